package ticket_usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"facepass.io/application/constants"
	event_usecases "facepass.io/application/usecases/event"
	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
	"facepass.io/infrastructure/logger"
	queue_tasks "facepass.io/infrastructure/message_queue/tasks"
	mq_types "facepass.io/infrastructure/message_queue/types"
)

// TicketStore is the slice of the repository the lifecycle service needs.
type TicketStore interface {
	Create(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error)
	FindByID(ctx context.Context, id string) (*entities.Ticket, error)
	TransitionStatus(ctx context.Context, id string, from entities.TicketStatus, to entities.TicketStatus) (bool, error)
	BindDescriptor(ctx context.Context, id string, descriptor entities.FaceDescriptor, imageBlob string) (bool, error)
}

type EventReader interface {
	FindByID(ctx context.Context, id string) (*entities.Event, error)
}

// Service owns every ticket status mutation. Status only ever moves forward
// through the transition graph; prices and descriptors are immutable once set.
type Service struct {
	Tickets   TicketStore
	Events    EventReader
	Admission *event_usecases.AdmissionController
	Verifier  types.FaceVerifierType
	// Queue is optional; when set, a confirmation email task is enqueued on
	// successful enrollment.
	Queue mq_types.TaskQueueBroker
	// StoreCapture is optional; when set, the raw enrollment capture is
	// persisted and its blob name bound to the ticket for the judge strategy.
	StoreCapture func(ctx context.Context, eventID string, ticketID string, capture string) (string, error)
}

// CreateTicket registers a ticket for an event. Free tickets skip the payment
// stage and go straight to awaiting enrollment.
func (s *Service) CreateTicket(ctx context.Context, eventID string, holder entities.Holder, ticketType entities.TicketType) (*entities.Ticket, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || !event.IsActive {
		return nil, entities.ErrEventNotFound
	}
	price, ok := constants.TICKET_PRICES[ticketType]
	if !ok {
		return nil, fmt.Errorf("unknown ticket class %q", ticketType)
	}
	if event.IsFree {
		ticketType = entities.TicketTypeFree
		price = 0
	}
	ticket := entities.Ticket{
		EventID:      eventID,
		Holder:       holder,
		Type:         ticketType,
		Price:        price,
		Status:       entities.InitialStatus(ticketType),
		PurchaseDate: time.Now(),
	}
	created, err := s.Tickets.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}
	logger.Info("ticket created", logger.LoggerOptions{
		Key:  "ticketID",
		Data: created.ID,
	}, logger.LoggerOptions{
		Key:  "status",
		Data: created.Status,
	})
	return created, nil
}

// ConfirmPayment moves a paid ticket to awaiting enrollment. Driven by the
// external payment confirmation, never by the gate.
func (s *Service) ConfirmPayment(ctx context.Context, ticketID string) (*entities.Ticket, error) {
	ok, err := s.Tickets.TransitionStatus(ctx, ticketID, entities.TicketPendingPayment, entities.TicketPaidPendingFace)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entities.ErrInvalidTransition
	}
	return s.Tickets.FindByID(ctx, ticketID)
}

// EnrollFace validates the registration capture, reserves a seat against the
// event capacity, and binds the resulting descriptor to the ticket, moving it
// to ACTIVE. The descriptor is immutable afterwards; a second enrollment
// fails. The seat reservation is compensated if the bind loses a race.
func (s *Service) EnrollFace(ctx context.Context, ticketID string, capture string) (*entities.Ticket, error) {
	ticket, err := s.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, entities.ErrClaimNotFound
	}
	if ticket.Enrolled() {
		return nil, entities.ErrDescriptorAlreadyBound
	}
	if ticket.Status != entities.TicketPaidPendingFace {
		return nil, entities.ErrInvalidTransition
	}

	validation, err := s.Verifier.ValidateEnrollment(&capture)
	if err != nil {
		return nil, entities.ErrServiceUnavailable
	}
	if !validation.Valid {
		logger.Info("enrollment capture rejected", logger.LoggerOptions{
			Key:  "ticketID",
			Data: ticketID,
		}, logger.LoggerOptions{
			Key:  "reason",
			Data: validation.Reason,
		})
		return nil, fmt.Errorf("%w: %s", entities.ErrDescriptorInvalid, validation.Reason)
	}

	var imageBlob string
	if s.StoreCapture != nil {
		blob, err := s.StoreCapture(ctx, ticket.EventID, ticket.ID, capture)
		if err != nil {
			logger.Error("failed to store enrollment capture", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		} else {
			imageBlob = blob
		}
	}
	if len(validation.Descriptor) == 0 && imageBlob == "" {
		// The judge strategy carries no descriptor; without a stored
		// reference capture the ticket could never be verified at the gate.
		return nil, entities.ErrServiceUnavailable
	}

	if err := s.Admission.OnTicketIssued(ctx, ticket.EventID); err != nil {
		return nil, err
	}
	bound, err := s.Tickets.BindDescriptor(ctx, ticket.ID, validation.Descriptor, imageBlob)
	if err != nil {
		s.Admission.ReleaseSeat(ctx, ticket.EventID)
		return nil, err
	}
	if !bound {
		s.Admission.ReleaseSeat(ctx, ticket.EventID)
		return nil, entities.ErrDescriptorAlreadyBound
	}

	enrolled, err := s.Tickets.FindByID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	s.queueConfirmationEmail(enrolled)
	return enrolled, nil
}

// ExpireTicket moves any non-terminal ticket to EXPIRED. Administrative
// trigger; attendee counters are not decremented by design.
func (s *Service) ExpireTicket(ctx context.Context, ticketID string) error {
	ticket, err := s.Tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return entities.ErrClaimNotFound
	}
	if !ticket.Status.CanTransitionTo(entities.TicketExpired) {
		return entities.ErrInvalidTransition
	}
	ok, err := s.Tickets.TransitionStatus(ctx, ticketID, ticket.Status, entities.TicketExpired)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrInvalidTransition
	}
	return nil
}

func (s *Service) queueConfirmationEmail(ticket *entities.Ticket) {
	if s.Queue == nil || ticket == nil {
		return
	}
	payload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       ticket.Holder.Email,
		Subject:  "Your FacePass ticket is ready",
		Template: "ticket_confirmation",
		Opts: map[string]any{
			"Name":     ticket.Holder.Name,
			"TicketID": ticket.ID,
			"Type":     string(ticket.Type),
		},
	})
	if err != nil {
		return
	}
	s.Queue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.Low,
	})
}
