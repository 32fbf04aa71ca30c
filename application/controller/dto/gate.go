package dto

type VerifyEntryDTO struct {
	EventID string `json:"eventID" validate:"required"`
	// Email identifies the claimed ticket before any biometric work happens.
	Email   string `json:"email" validate:"required,email"`
	Capture string `json:"capture" validate:"required"`
}
