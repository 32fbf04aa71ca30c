package constants

import "facepass.io/entities"

// Ticket prices per class, in BRL.
var TICKET_PRICES = map[entities.TicketType]float64{
	entities.TicketTypeFree:      0,
	entities.TicketTypeStandard:  150.00,
	entities.TicketTypeVIP:       450.00,
	entities.TicketTypeBackstage: 1200.00,
}

// Session lifetime for operator auth tokens.
var OPERATOR_SESSION_TTL_HOURS = 24

// Pending payments older than this are swept to EXPIRED by the queue task.
var PENDING_PAYMENT_TTL_MINUTES = 30

// Gate mismatch lockout defaults. A limit of 0 disables the lockout.
var DEFAULT_GATE_MISMATCH_LIMIT = 5
var GATE_MISMATCH_WINDOW_MINUTES = 10

var SUPPORT_EMAIL = "help@facepass.io"
