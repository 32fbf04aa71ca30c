package types

import "facepass.io/entities"

// MatchTier is the discretized confidence classification of a comparison.
type MatchTier string

const (
	TierHigh    MatchTier = "High"
	TierMedium  MatchTier = "Medium"
	TierLow     MatchTier = "Low"
	TierNoMatch MatchTier = "No Match"
)

// Match reports whether the tier counts as a positive identification. Low is
// accepted by policy; the thresholds behind it are env-tunable.
func (t MatchTier) Match() bool {
	return t == TierHigh || t == TierMedium || t == TierLow
}

// Strength is the ordering of tiers, higher meaning a stronger match.
func (t MatchTier) Strength() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// VerifyRequest describes one gate comparison. CaptureImage is the live frame.
// Exactly one of ReferenceDescriptor or ReferenceImageURL is consulted,
// depending on the backend strategy.
type VerifyRequest struct {
	CaptureImage        string
	ReferenceDescriptor entities.FaceDescriptor
	ReferenceImageURL   string
}

type VerifyResult struct {
	Matched      bool      `json:"matched"`
	FaceDetected bool      `json:"face_detected"`
	Tier         MatchTier `json:"tier"`
	// Distance is only populated by the descriptor strategy.
	Distance *float64 `json:"distance,omitempty"`
}

// EnrollmentValidation is the verdict on a registration capture. Descriptor is
// populated only by the descriptor-extraction strategy.
type EnrollmentValidation struct {
	Valid        bool                    `json:"valid"`
	FaceDetected bool                    `json:"face_detected"`
	Reason       string                  `json:"reason"`
	Descriptor   entities.FaceDescriptor `json:"-"`
}

// FaceVerifierType is the single capability interface both biometric
// strategies implement. Callers must not special-case either backend.
type FaceVerifierType interface {
	Verify(payload VerifyRequest) (*VerifyResult, error)
	ValidateEnrollment(image *string) (*EnrollmentValidation, error)
}
