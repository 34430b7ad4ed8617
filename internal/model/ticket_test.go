package model

import "testing"

func TestTicketStatusValid(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []TicketStatus{"", "closed", "in_progress", "OPEN", "Resolved"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestTicketParticipants(t *testing.T) {
	ticket := &SupportTicket{Customer: "cust-1", Technician: "tech-1"}

	if !ticket.IsParticipant("cust-1") || !ticket.IsParticipant("tech-1") {
		t.Fatal("customer and technician must both be participants")
	}
	if ticket.IsParticipant("stranger") {
		t.Fatal("stranger must not be a participant")
	}
	if got := ticket.OtherParticipant("cust-1"); got != "tech-1" {
		t.Fatalf("other participant of customer = %q, want tech-1", got)
	}
	if got := ticket.OtherParticipant("tech-1"); got != "cust-1" {
		t.Fatalf("other participant of technician = %q, want cust-1", got)
	}
}

func TestTicketHasFeedback(t *testing.T) {
	ticket := &SupportTicket{}
	if ticket.HasFeedback() {
		t.Fatal("fresh ticket must have no feedback")
	}
	rating := 5
	ticket.FeedbackRating = &rating
	if !ticket.HasFeedback() {
		t.Fatal("ticket with a rating must report feedback")
	}
}
