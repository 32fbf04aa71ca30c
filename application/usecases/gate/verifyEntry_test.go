package gate_usecases

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
)

type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[string]*entities.Ticket
	findErr error
}

func newFakeTicketStore(tickets ...*entities.Ticket) *fakeTicketStore {
	store := &fakeTicketStore{tickets: map[string]*entities.Ticket{}}
	for _, ticket := range tickets {
		store.tickets[ticket.ID] = ticket
	}
	return store
}

func (s *fakeTicketStore) FindClaim(ctx context.Context, eventID string, email string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, ticket := range s.tickets {
		if ticket.EventID == eventID && ticket.Holder.Email == email && ticket.Status != entities.TicketUsed {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeTicketStore) UsedTicketExists(ctx context.Context, eventID string, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ticket := range s.tickets {
		if ticket.EventID == eventID && ticket.Holder.Email == email && ticket.Status == entities.TicketUsed {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTicketStore) TransitionStatus(ctx context.Context, id string, from entities.TicketStatus, to entities.TicketStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok || ticket.Status != from {
		return false, nil
	}
	ticket.Status = to
	return true, nil
}

func (s *fakeTicketStore) FindByID(ctx context.Context, id string) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (s *fakeTicketStore) status(id string) entities.TicketStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets[id].Status
}

type fakeVerifier struct {
	mu     sync.Mutex
	result *types.VerifyResult
	err    error
	calls  int
}

func (v *fakeVerifier) Verify(payload types.VerifyRequest) (*types.VerifyResult, error) {
	v.mu.Lock()
	v.calls++
	v.mu.Unlock()
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

func (v *fakeVerifier) ValidateEnrollment(image *string) (*types.EnrollmentValidation, error) {
	return nil, errors.New("not used at the gate")
}

func (v *fakeVerifier) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	limit  int64
}

func newFakeLimiter(limit int64) *fakeLimiter {
	return &fakeLimiter{counts: map[string]int64{}, limit: limit}
}

func (l *fakeLimiter) RegisterMismatch(key string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key]
}

func (l *fakeLimiter) Blocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit > 0 && l.counts[key] >= l.limit
}

func activeTicket() *entities.Ticket {
	return &entities.Ticket{
		ID:             "t1",
		EventID:        "e1",
		Holder:         entities.Holder{Name: "Ana", Email: "ana@example.com"},
		Type:           entities.TicketTypeStandard,
		Status:         entities.TicketActive,
		FaceDescriptor: entities.FaceDescriptor{0.1, 0.2, 0.3},
	}
}

func TestVerifyEntryGrantsAndConsumesTicket(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierHigh}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if !result.Matched {
		t.Fatalf("expected grant, got denial %s: %s", result.Reason, result.Message)
	}
	if result.Confidence != string(types.TierHigh) {
		t.Errorf("confidence = %q, want %q", result.Confidence, types.TierHigh)
	}
	if result.Ticket == nil || result.Ticket.ID != "t1" {
		t.Error("granted result should carry the admitted ticket")
	}
	if got := store.status("t1"); got != entities.TicketUsed {
		t.Errorf("ticket status after grant = %s, want %s", got, entities.TicketUsed)
	}
}

func TestVerifyEntryLowTierStillGrants(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierLow}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if !result.Matched {
		t.Fatalf("low tier should grant, got %s", result.Reason)
	}
	if result.Confidence != string(types.TierLow) {
		t.Errorf("confidence = %q, want %q", result.Confidence, types.TierLow)
	}
}

func TestVerifyEntryClaimNotFoundSkipsBiometrics(t *testing.T) {
	store := newFakeTicketStore()
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierHigh}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ghost@example.com", "capture")
	if result.Matched {
		t.Fatal("unknown claim must be denied")
	}
	if result.Reason != entities.ReasonClaimNotFound {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonClaimNotFound)
	}
	if verifier.callCount() != 0 {
		t.Error("biometric backend must not be called for an unknown claim")
	}
}

func TestVerifyEntryAlreadyUsedFastFail(t *testing.T) {
	used := activeTicket()
	used.Status = entities.TicketUsed
	store := newFakeTicketStore(used)
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierHigh}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Reason != entities.ReasonAlreadyUsed {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonAlreadyUsed)
	}
	if verifier.callCount() != 0 {
		t.Error("biometric backend must not be called for a consumed ticket")
	}
}

func TestVerifyEntryNotActiveTicket(t *testing.T) {
	pending := activeTicket()
	pending.Status = entities.TicketPaidPendingFace
	store := newFakeTicketStore(pending)
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierHigh}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Reason != entities.ReasonTicketNotActive {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonTicketNotActive)
	}
	if verifier.callCount() != 0 {
		t.Error("biometric backend must not be called for an ineligible ticket")
	}
}

func TestVerifyEntryBackendFailureDeniesClosed(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{err: errors.New("upstream timeout")}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Matched {
		t.Fatal("backend failure must never grant entry")
	}
	if result.Reason != entities.ReasonServiceUnavailable {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonServiceUnavailable)
	}
	if got := store.status("t1"); got != entities.TicketActive {
		t.Errorf("ticket must stay %s after a backend failure, got %s", entities.TicketActive, got)
	}
}

func TestVerifyEntryNoFaceDetected(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: false, FaceDetected: false, Tier: types.TierNoMatch}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Reason != entities.ReasonNoFaceDetected {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonNoFaceDetected)
	}
}

func TestVerifyEntryMismatchKeepsTicketActive(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: false, FaceDetected: true, Tier: types.TierNoMatch}}
	limiter := newFakeLimiter(5)
	orc := &Orchestrator{Tickets: store, Verifier: verifier, Limiter: limiter}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Reason != entities.ReasonFaceMismatch {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonFaceMismatch)
	}
	if got := store.status("t1"); got != entities.TicketActive {
		t.Errorf("mismatch must leave the ticket %s, got %s", entities.TicketActive, got)
	}
	if limiter.counts["e1:ana@example.com"] != 1 {
		t.Error("mismatch should be registered with the attempt limiter")
	}
}

func TestVerifyEntryLockoutAfterRepeatedMismatches(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: false, FaceDetected: true, Tier: types.TierNoMatch}}
	limiter := newFakeLimiter(3)
	orc := &Orchestrator{Tickets: store, Verifier: verifier, Limiter: limiter}

	for i := 0; i < 3; i++ {
		result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
		if result.Reason != entities.ReasonFaceMismatch {
			t.Fatalf("attempt %d: reason = %s, want %s", i+1, result.Reason, entities.ReasonFaceMismatch)
		}
	}

	result := orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if result.Reason != entities.ReasonTooManyAttempts {
		t.Errorf("reason = %s, want %s", result.Reason, entities.ReasonTooManyAttempts)
	}
	before := verifier.callCount()
	orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
	if verifier.callCount() != before {
		t.Error("blocked claims must not reach the biometric backend")
	}
}

func TestVerifyEntryConcurrentAdmitsExactlyOnce(t *testing.T) {
	store := newFakeTicketStore(activeTicket())
	verifier := &fakeVerifier{result: &types.VerifyResult{Matched: true, FaceDetected: true, Tier: types.TierHigh}}
	orc := &Orchestrator{Tickets: store, Verifier: verifier}

	const terminals = 16
	results := make(chan *entities.VerificationResult, terminals)
	var wg sync.WaitGroup
	for i := 0; i < terminals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- orc.VerifyEntry(context.Background(), "e1", "ana@example.com", "capture")
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for result := range results {
		if result.Matched {
			granted++
		} else if result.Reason != entities.ReasonAlreadyUsed && result.Reason != entities.ReasonTicketNotActive {
			t.Errorf("losing attempt denied with %s, want an already-used style denial", result.Reason)
		}
	}
	if granted != 1 {
		t.Fatalf("%d terminals granted entry, want exactly 1", granted)
	}
	if got := store.status("t1"); got != entities.TicketUsed {
		t.Errorf("ticket status = %s, want %s", got, entities.TicketUsed)
	}
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]int64
}

func (c *mapCache) IncrementWithTTL(key string, ttl time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key]++
	return c.entries[key]
}

func (c *mapCache) FindOne(key string) *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.entries[key]
	if !ok {
		return nil
	}
	raw := strconv.FormatInt(count, 10)
	return &raw
}

func TestRedisAttemptLimiter(t *testing.T) {
	limiter := &RedisAttemptLimiter{
		Cache:  &mapCache{entries: map[string]int64{}},
		Limit:  2,
		Window: time.Minute,
	}
	if limiter.Blocked("e1:ana") {
		t.Fatal("fresh claim should not be blocked")
	}
	limiter.RegisterMismatch("e1:ana")
	if limiter.Blocked("e1:ana") {
		t.Fatal("one mismatch below the limit should not block")
	}
	limiter.RegisterMismatch("e1:ana")
	if !limiter.Blocked("e1:ana") {
		t.Fatal("reaching the limit should block")
	}
	if limiter.Blocked("e1:bob") {
		t.Error("lockout must be scoped per claim")
	}
}

func TestRedisAttemptLimiterDisabled(t *testing.T) {
	limiter := &RedisAttemptLimiter{
		Cache:  &mapCache{entries: map[string]int64{}},
		Limit:  0,
		Window: time.Minute,
	}
	for i := 0; i < 20; i++ {
		limiter.RegisterMismatch("e1:ana")
	}
	if limiter.Blocked("e1:ana") {
		t.Error("a zero limit disables the lockout entirely")
	}
}
