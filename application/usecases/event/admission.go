package event_usecases

import (
	"context"
	"os"

	"facepass.io/entities"
	"facepass.io/infrastructure/logger"
)

// EventStore is the slice of the repository the admission controller needs.
type EventStore interface {
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	IncrementAttendees(ctx context.Context, id string, enforceCap bool) (bool, error)
	DecrementAttendees(ctx context.Context, id string) error
}

// AdmissionController owns the per-event attendee counter. The counter moves
// exactly once per ticket reaching ACTIVE and never moves back on expiry.
type AdmissionController struct {
	Events EventStore
	// Strict rejects issuance once the event is full. Soft mode keeps the
	// counter informational only.
	Strict bool
}

// NewAdmissionController reads CAPACITY_ENFORCEMENT; anything other than
// "soft" enforces capacity strictly.
func NewAdmissionController(events EventStore) *AdmissionController {
	return &AdmissionController{
		Events: events,
		Strict: os.Getenv("CAPACITY_ENFORCEMENT") != "soft",
	}
}

// OnTicketIssued reserves one seat. The increment and the capacity check are
// a single conditional operation at the store, so concurrent enrollments near
// capacity cannot lose updates or overshoot.
func (ac *AdmissionController) OnTicketIssued(ctx context.Context, eventID string) error {
	ok, err := ac.Events.IncrementAttendees(ctx, eventID, ac.Strict)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	event, err := ac.Events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil || !event.IsActive {
		return entities.ErrEventNotFound
	}
	logger.Warning("ticket issuance rejected, event at capacity", logger.LoggerOptions{
		Key:  "eventID",
		Data: eventID,
	})
	return entities.ErrCapacityExceeded
}

// ReleaseSeat undoes a reservation whose enrollment did not commit.
func (ac *AdmissionController) ReleaseSeat(ctx context.Context, eventID string) {
	if err := ac.Events.DecrementAttendees(ctx, eventID); err != nil {
		logger.Error("failed to release reserved seat", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "eventID",
			Data: eventID,
		})
	}
}

func (ac *AdmissionController) CapacityRemaining(ctx context.Context, eventID string) (int64, error) {
	event, err := ac.Events.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, entities.ErrEventNotFound
	}
	return event.CapacityRemaining(), nil
}
