package entities

import (
	"errors"
	"time"

	"facepass.io/application/utils"
)

var ErrEventNotFound = errors.New("event not found or inactive")

type Event struct {
	Name        string    `bson:"name" json:"name" validate:"required"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Location    string    `bson:"location" json:"location"`
	Image       string    `bson:"image" json:"image"`
	IsFree      bool      `bson:"isFree" json:"isFree"`
	Price       float64   `bson:"price" json:"price"`

	// CurrentAttendees must never exceed MaxCapacity. The counter is only
	// ever mutated through conditional updates at the repository boundary.
	MaxCapacity      int64 `bson:"maxCapacity" json:"maxCapacity"`
	CurrentAttendees int64 `bson:"currentAttendees" json:"currentAttendees"`

	IsActive bool `bson:"isActive" json:"isActive"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model Event) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}

func (e *Event) CapacityRemaining() int64 {
	remaining := e.MaxCapacity - e.CurrentAttendees
	if remaining < 0 {
		return 0
	}
	return remaining
}
