package gate_usecases

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"facepass.io/application/constants"
	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
	"facepass.io/infrastructure/logger"
)

// TicketStore is the slice of the repository the orchestrator needs. Status
// reads are re-validated by the conditional TransitionStatus write, so no
// lock is held across the remote verification call.
type TicketStore interface {
	FindClaim(ctx context.Context, eventID string, email string) (*entities.Ticket, error)
	UsedTicketExists(ctx context.Context, eventID string, email string) (bool, error)
	TransitionStatus(ctx context.Context, id string, from entities.TicketStatus, to entities.TicketStatus) (bool, error)
	FindByID(ctx context.Context, id string) (*entities.Ticket, error)
}

// AttemptLimiter throttles repeated mismatches per claim. Implementations
// must never block a request because the limiter itself failed.
type AttemptLimiter interface {
	RegisterMismatch(key string) int64
	Blocked(key string) bool
}

// ReferenceResolver turns a stored capture blob into a readable URL for the
// judge strategy. Descriptor-based verification does not use it.
type ReferenceResolver interface {
	GenerateDownloadURL(fileName string) (*string, error)
}

// Orchestrator runs one gate attempt: resolve the claimed identity to a
// single candidate ticket, verify the live capture against that one ticket,
// then commit the admission with a compare-and-set. Every failure or
// ambiguous backend response denies entry.
type Orchestrator struct {
	Tickets  TicketStore
	Verifier types.FaceVerifierType
	Limiter  AttemptLimiter
	Uploads  ReferenceResolver
}

// VerifyEntry processes a claim (an email scoped to one event) plus a live
// capture and returns the per-attempt result. The result is never persisted.
func (orc *Orchestrator) VerifyEntry(ctx context.Context, eventID string, claimEmail string, capture string) *entities.VerificationResult {
	attemptKey := fmt.Sprintf("%s:%s", eventID, claimEmail)
	if orc.Limiter != nil && orc.Limiter.Blocked(attemptKey) {
		return deny(entities.ReasonTooManyAttempts, "too many failed attempts for this identity, ask staff for assistance")
	}

	ticket, err := orc.Tickets.FindClaim(ctx, eventID, claimEmail)
	if err != nil {
		return deny(entities.ReasonServiceUnavailable, "could not resolve the claimed identity, try again")
	}
	if ticket == nil {
		// Fail fast before any biometric call. A fully consumed ticket is
		// reported as such rather than as an unknown identity.
		used, err := orc.Tickets.UsedTicketExists(ctx, eventID, claimEmail)
		if err == nil && used {
			return deny(entities.ReasonAlreadyUsed, "ticket has already been used for entry")
		}
		return deny(entities.ReasonClaimNotFound, "no ticket found for this identity at this event")
	}
	if ticket.Status != entities.TicketActive {
		return deny(entities.ReasonTicketNotActive, fmt.Sprintf("ticket is not eligible for entry (status %s)", ticket.Status))
	}

	result, err := orc.Verifier.Verify(orc.buildRequest(ticket, capture))
	if err != nil {
		// Includes timeouts and malformed backend responses. Never an
		// implicit approval.
		return deny(entities.ReasonServiceUnavailable, "face verification is temporarily unavailable, entry denied")
	}
	if !result.FaceDetected {
		return deny(entities.ReasonNoFaceDetected, "no usable face in the capture, position the visitor and retry")
	}
	if !result.Matched {
		if orc.Limiter != nil {
			orc.Limiter.RegisterMismatch(attemptKey)
		}
		denial := deny(entities.ReasonFaceMismatch, "captured face does not match the registered holder")
		denial.Confidence = string(result.Tier)
		return denial
	}

	// The ticket may have been consumed by a racing terminal while the
	// verification call was in flight; the conditional write decides.
	committed, err := orc.Tickets.TransitionStatus(ctx, ticket.ID, entities.TicketActive, entities.TicketUsed)
	if err != nil {
		return deny(entities.ReasonServiceUnavailable, "could not commit the admission, entry denied")
	}
	if !committed {
		if current, err := orc.Tickets.FindByID(ctx, ticket.ID); err == nil && current != nil && current.Status == entities.TicketUsed {
			return deny(entities.ReasonAlreadyUsed, "ticket was just used at another terminal")
		}
		return deny(entities.ReasonTicketNotActive, "ticket is no longer eligible for entry")
	}

	ticket.Status = entities.TicketUsed
	logger.Info("gate access granted", logger.LoggerOptions{
		Key:  "ticketID",
		Data: ticket.ID,
	}, logger.LoggerOptions{
		Key:  "tier",
		Data: string(result.Tier),
	})
	return &entities.VerificationResult{
		Matched:    true,
		Confidence: string(result.Tier),
		Ticket:     ticket,
		Message:    "access granted",
	}
}

func (orc *Orchestrator) buildRequest(ticket *entities.Ticket, capture string) types.VerifyRequest {
	request := types.VerifyRequest{
		CaptureImage:        capture,
		ReferenceDescriptor: ticket.FaceDescriptor,
	}
	if ticket.FaceImageBlob != "" && orc.Uploads != nil {
		if url, err := orc.Uploads.GenerateDownloadURL(ticket.FaceImageBlob); err == nil && url != nil {
			request.ReferenceImageURL = *url
		}
	}
	return request
}

func deny(reason entities.DenialReason, message string) *entities.VerificationResult {
	return &entities.VerificationResult{
		Matched:    false,
		Confidence: string(types.TierNoMatch),
		Reason:     reason,
		Message:    message,
	}
}

// RedisAttemptLimiter counts mismatches per claim in the cache with a fixed
// window. A limit of zero disables blocking.
type RedisAttemptLimiter struct {
	Cache interface {
		IncrementWithTTL(key string, ttl time.Duration) int64
		FindOne(key string) *string
	}
	Limit  int64
	Window time.Duration
}

func NewRedisAttemptLimiter(cache interface {
	IncrementWithTTL(key string, ttl time.Duration) int64
	FindOne(key string) *string
}) *RedisAttemptLimiter {
	limit := int64(constants.DEFAULT_GATE_MISMATCH_LIMIT)
	if raw := os.Getenv("GATE_MISMATCH_LIMIT"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	return &RedisAttemptLimiter{
		Cache:  cache,
		Limit:  limit,
		Window: time.Duration(constants.GATE_MISMATCH_WINDOW_MINUTES) * time.Minute,
	}
}

func (rl *RedisAttemptLimiter) key(claim string) string {
	return fmt.Sprintf("gate-mismatch:%s", claim)
}

func (rl *RedisAttemptLimiter) RegisterMismatch(claim string) int64 {
	if rl.Limit == 0 {
		return 0
	}
	return rl.Cache.IncrementWithTTL(rl.key(claim), rl.Window)
}

func (rl *RedisAttemptLimiter) Blocked(claim string) bool {
	if rl.Limit == 0 {
		return false
	}
	raw := rl.Cache.FindOne(rl.key(claim))
	if raw == nil {
		return false
	}
	count, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return false
	}
	return count >= rl.Limit
}
