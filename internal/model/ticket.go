package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "inProgress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// Valid reports whether s is one of the three ticket statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// SupportTicket is a customer/technician support case. Feedback lives on the
// ticket itself: both fields are nil until the customer submits a rating, and
// they are written exactly once.
type SupportTicket struct {
	ID         uint64       `gorm:"primaryKey" json:"id"`
	Customer   string       `gorm:"index;not null" json:"customer"`
	Technician string       `gorm:"index;not null" json:"technician"`
	Status     TicketStatus `gorm:"type:varchar(32);index;not null" json:"status"`

	FeedbackRating  *int    `json:"feedback_rating,omitempty"`
	FeedbackComment *string `gorm:"type:text" json:"feedback_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *SupportTicket) IsParticipant(principal string) bool {
	return t.Customer == principal || t.Technician == principal
}

func (t *SupportTicket) HasFeedback() bool {
	return t.FeedbackRating != nil
}

// OtherParticipant returns the counterpart of principal on the ticket.
// principal must be a participant.
func (t *SupportTicket) OtherParticipant(principal string) string {
	if principal == t.Customer {
		return t.Technician
	}
	return t.Customer
}
