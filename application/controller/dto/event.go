package dto

import "time"

type CreateEventDTO struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Image       string    `json:"image"`
	MaxCapacity int64     `json:"maxCapacity" validate:"required,gt=0"`
	IsFree      bool      `json:"isFree"`
	Price       float64   `json:"price" validate:"gte=0"`
}

type UpdateEventDTO struct {
	EventID     string  `json:"eventID" validate:"required"`
	IsActive    *bool   `json:"isActive"`
	MaxCapacity *int64  `json:"maxCapacity" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}
