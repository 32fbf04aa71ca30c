package entities

import "errors"

// Denial reasons attached to a VerificationResult. Every ambiguous or failed
// condition at the gate resolves to one of these; the gate never defaults to
// an approval.
type DenialReason string

const (
	ReasonClaimNotFound      DenialReason = "CLAIM_NOT_FOUND"
	ReasonAlreadyUsed        DenialReason = "ALREADY_USED"
	ReasonNoFaceDetected     DenialReason = "NO_FACE_DETECTED"
	ReasonFaceMismatch       DenialReason = "FACE_MISMATCH"
	ReasonServiceUnavailable DenialReason = "SERVICE_UNAVAILABLE"
	ReasonTicketNotActive    DenialReason = "TICKET_NOT_ACTIVE"
	ReasonTooManyAttempts    DenialReason = "TOO_MANY_ATTEMPTS"
)

var (
	ErrClaimNotFound          = errors.New("no eligible ticket found for the supplied identity")
	ErrAlreadyUsed            = errors.New("ticket has already been used for entry")
	ErrNoFaceDetected         = errors.New("no usable face detected in the capture")
	ErrFaceMismatch           = errors.New("captured face does not match the enrolled descriptor")
	ErrIncompatibleDescriptor = errors.New("descriptors are not comparable")
	ErrServiceUnavailable     = errors.New("face verification backend is unavailable")
	ErrCapacityExceeded       = errors.New("event has reached maximum capacity")
	ErrDescriptorInvalid      = errors.New("capture rejected for enrollment")
	ErrDescriptorAlreadyBound = errors.New("ticket already carries an enrolled descriptor")
	ErrInvalidTransition      = errors.New("ticket status transition not allowed")
)

// VerificationResult is produced once per gate attempt and never persisted.
// Confidence carries the match tier as an audit string; raw descriptor data is
// never exposed.
type VerificationResult struct {
	Matched    bool         `json:"matched"`
	Confidence string       `json:"confidence"`
	Ticket     *Ticket      `json:"ticket,omitempty"`
	Reason     DenialReason `json:"reason,omitempty"`
	Message    string       `json:"message"`
}
