package dto

import "facepass.io/entities"

type CreateTicketDTO struct {
	EventID    string               `json:"eventID" validate:"required"`
	Type       entities.TicketType  `json:"type" validate:"required,oneof=FREE STANDARD VIP BACKSTAGE"`
	HolderName string               `json:"holderName" validate:"required,name_special_char"`
	Email      string               `json:"email" validate:"required,email"`
	NationalID string               `json:"nationalID" validate:"omitempty,min=4"`
}

type ConfirmPaymentDTO struct {
	TicketID string `json:"ticketID" validate:"required"`
}

type EnrollFaceDTO struct {
	TicketID string `json:"ticketID" validate:"required"`
	// Capture is the registration photo as base64, with or without a data url
	// prefix.
	Capture string `json:"capture" validate:"required"`
}

type ExpireTicketDTO struct {
	TicketID string `json:"ticketID" validate:"required"`
}
