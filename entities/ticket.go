package entities

import (
	"time"

	"facepass.io/application/utils"
)

type TicketStatus string

const (
	TicketPendingPayment  TicketStatus = "PENDING_PAYMENT"
	TicketPaidPendingFace TicketStatus = "PAID_PENDING_FACE"
	TicketActive          TicketStatus = "ACTIVE"
	TicketUsed            TicketStatus = "USED"
	TicketExpired         TicketStatus = "EXPIRED"
)

type TicketType string

const (
	TicketTypeFree      TicketType = "FREE"
	TicketTypeStandard  TicketType = "STANDARD"
	TicketTypeVIP       TicketType = "VIP"
	TicketTypeBackstage TicketType = "BACKSTAGE"
)

// Holder is the identity a ticket is issued to. Gate claims are matched
// against the email.
type Holder struct {
	Name       string `bson:"name" json:"name" validate:"required"`
	Email      string `bson:"email" json:"email" validate:"email,required"`
	NationalID string `bson:"nationalID" json:"nationalID"`
}

// FaceDescriptor is a fixed-length biometric feature vector. It is only
// comparable against descriptors produced by the same extraction method.
type FaceDescriptor []float64

type Ticket struct {
	EventID      string       `bson:"eventID" json:"eventID"`
	Holder       Holder       `bson:"holder" json:"holder"`
	Type         TicketType   `bson:"type" json:"type"`
	Price        float64      `bson:"price" json:"price"`
	Status       TicketStatus `bson:"status" json:"status"`
	PurchaseDate time.Time    `bson:"purchaseDate" json:"purchaseDate"`

	// FaceDescriptor is bound exactly once, at enrollment, and is the only
	// descriptor ever compared against for this ticket.
	FaceDescriptor FaceDescriptor `bson:"faceDescriptor,omitempty" json:"-"`
	// FaceImageBlob names the stored enrollment capture. Used by the
	// remote judge backend which compares images rather than descriptors.
	FaceImageBlob string `bson:"faceImageBlob,omitempty" json:"-"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model Ticket) ParseModel() any {
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

// ticketTransitions is the forward-only transition graph. Expired is terminal
// and reachable from any non-terminal state; Used is terminal for admission.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketPendingPayment:  {TicketPaidPendingFace, TicketExpired},
	TicketPaidPendingFace: {TicketActive, TicketExpired},
	TicketActive:          {TicketUsed, TicketExpired},
	TicketUsed:            {},
	TicketExpired:         {},
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TicketStatus) Terminal() bool {
	return len(ticketTransitions[s]) == 0
}

// InitialStatus returns the status a freshly created ticket starts in.
// Free tickets skip the payment stage entirely.
func InitialStatus(ticketType TicketType) TicketStatus {
	if ticketType == TicketTypeFree {
		return TicketPaidPendingFace
	}
	return TicketPendingPayment
}

// Enrolled reports whether a descriptor or reference capture has been bound.
func (t *Ticket) Enrolled() bool {
	return len(t.FaceDescriptor) > 0 || t.FaceImageBlob != ""
}
