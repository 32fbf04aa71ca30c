package ticket_usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"facepass.io/application/constants"
	event_usecases "facepass.io/application/usecases/event"
	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
)

type memTicketStore struct {
	mu       sync.Mutex
	tickets  map[string]*entities.Ticket
	nextID   int
	bindFail bool
}

func newMemTicketStore() *memTicketStore {
	return &memTicketStore{tickets: map[string]*entities.Ticket{}}
}

func (s *memTicketStore) Create(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	ticket.ID = string(rune('a' + s.nextID))
	copied := ticket
	s.tickets[ticket.ID] = &copied
	returned := ticket
	return &returned, nil
}

func (s *memTicketStore) FindByID(ctx context.Context, id string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (s *memTicketStore) TransitionStatus(ctx context.Context, id string, from entities.TicketStatus, to entities.TicketStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok || ticket.Status != from {
		return false, nil
	}
	ticket.Status = to
	return true, nil
}

func (s *memTicketStore) BindDescriptor(ctx context.Context, id string, descriptor entities.FaceDescriptor, imageBlob string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bindFail {
		return false, nil
	}
	ticket, ok := s.tickets[id]
	if !ok || ticket.Status != entities.TicketPaidPendingFace || len(ticket.FaceDescriptor) > 0 {
		return false, nil
	}
	ticket.FaceDescriptor = descriptor
	ticket.FaceImageBlob = imageBlob
	ticket.Status = entities.TicketActive
	return true, nil
}

func (s *memTicketStore) seed(ticket *entities.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.ID] = ticket
}

type memEventStore struct {
	mu     sync.Mutex
	events map[string]*entities.Event
}

func newMemEventStore(events ...*entities.Event) *memEventStore {
	store := &memEventStore{events: map[string]*entities.Event{}}
	for _, event := range events {
		store.events[event.ID] = event
	}
	return store
}

func (s *memEventStore) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (s *memEventStore) IncrementAttendees(ctx context.Context, id string, enforceCap bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok || !event.IsActive {
		return false, nil
	}
	if enforceCap && event.CurrentAttendees >= event.MaxCapacity {
		return false, nil
	}
	event.CurrentAttendees++
	return true, nil
}

func (s *memEventStore) DecrementAttendees(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if ok && event.CurrentAttendees > 0 {
		event.CurrentAttendees--
	}
	return nil
}

func (s *memEventStore) attendees(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id].CurrentAttendees
}

type enrollVerifier struct {
	validation *types.EnrollmentValidation
	err        error
}

func (v *enrollVerifier) Verify(payload types.VerifyRequest) (*types.VerifyResult, error) {
	return nil, errors.New("not used during enrollment")
}

func (v *enrollVerifier) ValidateEnrollment(image *string) (*types.EnrollmentValidation, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.validation, nil
}

func paidEvent() *entities.Event {
	return &entities.Event{ID: "e1", Name: "Arena Night", MaxCapacity: 100, IsActive: true}
}

func goodEnrollment() *enrollVerifier {
	return &enrollVerifier{validation: &types.EnrollmentValidation{
		Valid:        true,
		FaceDetected: true,
		Descriptor:   entities.FaceDescriptor{0.1, 0.2, 0.3},
	}}
}

func newService(tickets *memTicketStore, events *memEventStore, verifier *enrollVerifier) *Service {
	return &Service{
		Tickets:   tickets,
		Events:    events,
		Admission: &event_usecases.AdmissionController{Events: events, Strict: true},
		Verifier:  verifier,
	}
}

func holder() entities.Holder {
	return entities.Holder{Name: "Ana", Email: "ana@example.com"}
}

func TestCreateTicketStatuses(t *testing.T) {
	tickets := newMemTicketStore()
	service := newService(tickets, newMemEventStore(paidEvent()), goodEnrollment())

	free, err := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if free.Status != entities.TicketPaidPendingFace {
		t.Errorf("free ticket status = %s, want %s", free.Status, entities.TicketPaidPendingFace)
	}
	if free.Price != 0 {
		t.Errorf("free ticket price = %v, want 0", free.Price)
	}

	standard, err := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeStandard)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if standard.Status != entities.TicketPendingPayment {
		t.Errorf("standard ticket status = %s, want %s", standard.Status, entities.TicketPendingPayment)
	}
	if standard.Price != constants.TICKET_PRICES[entities.TicketTypeStandard] {
		t.Errorf("standard ticket price = %v, want %v", standard.Price, constants.TICKET_PRICES[entities.TicketTypeStandard])
	}
}

func TestCreateTicketUnknownEvent(t *testing.T) {
	service := newService(newMemTicketStore(), newMemEventStore(), goodEnrollment())
	_, err := service.CreateTicket(context.Background(), "missing", holder(), entities.TicketTypeStandard)
	if !errors.Is(err, entities.ErrEventNotFound) {
		t.Errorf("expected %v, got %v", entities.ErrEventNotFound, err)
	}
}

func TestCreateTicketFreeEventForcesFreeClass(t *testing.T) {
	event := paidEvent()
	event.IsFree = true
	service := newService(newMemTicketStore(), newMemEventStore(event), goodEnrollment())

	ticket, err := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeVIP)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if ticket.Type != entities.TicketTypeFree || ticket.Price != 0 {
		t.Errorf("free event issued %s at %v, want FREE at 0", ticket.Type, ticket.Price)
	}
}

func TestConfirmPayment(t *testing.T) {
	tickets := newMemTicketStore()
	service := newService(tickets, newMemEventStore(paidEvent()), goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeStandard)
	confirmed, err := service.ConfirmPayment(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if confirmed.Status != entities.TicketPaidPendingFace {
		t.Errorf("status = %s, want %s", confirmed.Status, entities.TicketPaidPendingFace)
	}

	if _, err := service.ConfirmPayment(context.Background(), created.ID); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Errorf("double confirmation should fail with %v, got %v", entities.ErrInvalidTransition, err)
	}
}

func TestEnrollFaceActivatesAndReservesSeat(t *testing.T) {
	tickets := newMemTicketStore()
	events := newMemEventStore(paidEvent())
	service := newService(tickets, events, goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	enrolled, err := service.EnrollFace(context.Background(), created.ID, "capture")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if enrolled.Status != entities.TicketActive {
		t.Errorf("status = %s, want %s", enrolled.Status, entities.TicketActive)
	}
	if len(enrolled.FaceDescriptor) == 0 {
		t.Error("descriptor should be bound after enrollment")
	}
	if got := events.attendees("e1"); got != 1 {
		t.Errorf("attendees = %d, want 1", got)
	}
}

func TestEnrollFaceTwiceFails(t *testing.T) {
	tickets := newMemTicketStore()
	events := newMemEventStore(paidEvent())
	service := newService(tickets, events, goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	if _, err := service.EnrollFace(context.Background(), created.ID, "capture"); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if _, err := service.EnrollFace(context.Background(), created.ID, "capture"); !errors.Is(err, entities.ErrDescriptorAlreadyBound) {
		t.Fatalf("second enrollment should fail with %v, got %v", entities.ErrDescriptorAlreadyBound, err)
	}
	if got := events.attendees("e1"); got != 1 {
		t.Errorf("attendees = %d, want 1 after rejected re-enrollment", got)
	}
}

func TestEnrollFaceRejectedCapture(t *testing.T) {
	tickets := newMemTicketStore()
	events := newMemEventStore(paidEvent())
	verifier := &enrollVerifier{validation: &types.EnrollmentValidation{
		Valid:        false,
		FaceDetected: false,
		Reason:       "no face detected in the image",
	}}
	service := newService(tickets, events, verifier)

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	_, err := service.EnrollFace(context.Background(), created.ID, "capture")
	if !errors.Is(err, entities.ErrDescriptorInvalid) {
		t.Fatalf("expected %v, got %v", entities.ErrDescriptorInvalid, err)
	}
	if got := events.attendees("e1"); got != 0 {
		t.Errorf("rejected capture must not reserve a seat, attendees = %d", got)
	}
}

func TestEnrollFaceBackendDown(t *testing.T) {
	tickets := newMemTicketStore()
	events := newMemEventStore(paidEvent())
	service := newService(tickets, events, &enrollVerifier{err: errors.New("timeout")})

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	if _, err := service.EnrollFace(context.Background(), created.ID, "capture"); !errors.Is(err, entities.ErrServiceUnavailable) {
		t.Fatalf("expected %v, got %v", entities.ErrServiceUnavailable, err)
	}
}

func TestEnrollFaceSoldOut(t *testing.T) {
	event := paidEvent()
	event.MaxCapacity = 1
	event.CurrentAttendees = 1
	tickets := newMemTicketStore()
	events := newMemEventStore(event)
	service := newService(tickets, events, goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	_, err := service.EnrollFace(context.Background(), created.ID, "capture")
	if !errors.Is(err, entities.ErrCapacityExceeded) {
		t.Fatalf("expected %v, got %v", entities.ErrCapacityExceeded, err)
	}
	stored, _ := tickets.FindByID(context.Background(), created.ID)
	if stored.Status != entities.TicketPaidPendingFace {
		t.Errorf("sold-out enrollment must leave status %s, got %s", entities.TicketPaidPendingFace, stored.Status)
	}
}

func TestEnrollFaceBindRaceCompensatesSeat(t *testing.T) {
	tickets := newMemTicketStore()
	tickets.bindFail = true
	events := newMemEventStore(paidEvent())
	service := newService(tickets, events, goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeFree)
	_, err := service.EnrollFace(context.Background(), created.ID, "capture")
	if !errors.Is(err, entities.ErrDescriptorAlreadyBound) {
		t.Fatalf("expected %v, got %v", entities.ErrDescriptorAlreadyBound, err)
	}
	if got := events.attendees("e1"); got != 0 {
		t.Errorf("lost bind race must release the seat, attendees = %d", got)
	}
}

func TestExpireTicket(t *testing.T) {
	tickets := newMemTicketStore()
	events := newMemEventStore(paidEvent())
	service := newService(tickets, events, goodEnrollment())

	created, _ := service.CreateTicket(context.Background(), "e1", holder(), entities.TicketTypeStandard)
	if err := service.ExpireTicket(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	stored, _ := tickets.FindByID(context.Background(), created.ID)
	if stored.Status != entities.TicketExpired {
		t.Errorf("status = %s, want %s", stored.Status, entities.TicketExpired)
	}

	used := &entities.Ticket{ID: "used", EventID: "e1", Status: entities.TicketUsed}
	tickets.seed(used)
	if err := service.ExpireTicket(context.Background(), "used"); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Errorf("used tickets must not expire, got %v", err)
	}

	if err := service.ExpireTicket(context.Background(), "missing"); !errors.Is(err, entities.ErrClaimNotFound) {
		t.Errorf("expected %v, got %v", entities.ErrClaimNotFound, err)
	}
}
