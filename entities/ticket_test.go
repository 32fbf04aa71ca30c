package entities

import "testing"

func TestCanTransitionTo(t *testing.T) {
	allowed := []struct {
		from TicketStatus
		to   TicketStatus
	}{
		{TicketPendingPayment, TicketPaidPendingFace},
		{TicketPendingPayment, TicketExpired},
		{TicketPaidPendingFace, TicketActive},
		{TicketPaidPendingFace, TicketExpired},
		{TicketActive, TicketUsed},
		{TicketActive, TicketExpired},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Errorf("%s -> %s should be allowed", tt.from, tt.to)
		}
	}

	forbidden := []struct {
		from TicketStatus
		to   TicketStatus
	}{
		{TicketPendingPayment, TicketActive},
		{TicketPendingPayment, TicketUsed},
		{TicketPaidPendingFace, TicketUsed},
		{TicketActive, TicketPaidPendingFace},
		{TicketUsed, TicketActive},
		{TicketUsed, TicketExpired},
		{TicketExpired, TicketActive},
		{TicketExpired, TicketUsed},
		{TicketActive, TicketActive},
	}
	for _, tt := range forbidden {
		if tt.from.CanTransitionTo(tt.to) {
			t.Errorf("%s -> %s should be rejected", tt.from, tt.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		status TicketStatus
		want   bool
	}{
		{TicketPendingPayment, false},
		{TicketPaidPendingFace, false},
		{TicketActive, false},
		{TicketUsed, true},
		{TicketExpired, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(TicketTypeFree); got != TicketPaidPendingFace {
		t.Errorf("free tickets should skip payment, got %s", got)
	}
	for _, ticketType := range []TicketType{TicketTypeStandard, TicketTypeVIP, TicketTypeBackstage} {
		if got := InitialStatus(ticketType); got != TicketPendingPayment {
			t.Errorf("%s tickets should start pending payment, got %s", ticketType, got)
		}
	}
}

func TestEnrolled(t *testing.T) {
	blank := &Ticket{}
	if blank.Enrolled() {
		t.Error("ticket without descriptor or capture should not be enrolled")
	}
	withDescriptor := &Ticket{FaceDescriptor: FaceDescriptor{0.1, 0.2}}
	if !withDescriptor.Enrolled() {
		t.Error("ticket with descriptor should be enrolled")
	}
	withBlob := &Ticket{FaceImageBlob: "faces/e1/t1.jpg"}
	if !withBlob.Enrolled() {
		t.Error("ticket with stored capture should be enrolled")
	}
}
