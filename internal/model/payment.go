package model

import "time"

// ToggleStatus is the simplified view of a payment toggle that the customer
// side polls: disabled (switch off or never set), notRequested (switch on but
// nothing asked yet), enabled (switch on and payment requested).
type ToggleStatus string

const (
	ToggleDisabled     ToggleStatus = "disabled"
	ToggleEnabled      ToggleStatus = "enabled"
	ToggleNotRequested ToggleStatus = "notRequested"
)

// PaymentToggle is the per-ticket flag set written by the technician and
// polled by the customer. Active mirrors "a payment prompt should be shown".
type PaymentToggle struct {
	TicketID         uint64 `gorm:"primaryKey" json:"ticket_id"`
	Customer         string `gorm:"index;not null" json:"customer"`
	Technician       string `gorm:"index;not null" json:"technician"`
	ToggleEnabled    bool   `gorm:"not null;default:false" json:"toggle_enabled"`
	PaymentRequested bool   `gorm:"not null;default:false" json:"payment_requested"`
	Active           bool   `gorm:"not null;default:false" json:"active"`
	StripeSessionID  string `gorm:"type:varchar(255)" json:"stripe_session_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveToggleStatus collapses a toggle record (nil when never set) into the
// simplified status the customer dashboard polls.
func DeriveToggleStatus(t *PaymentToggle) ToggleStatus {
	switch {
	case t == nil, !t.ToggleEnabled:
		return ToggleDisabled
	case t.PaymentRequested:
		return ToggleEnabled
	default:
		return ToggleNotRequested
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// PaymentRecord tracks a payment by its external payment id.
type PaymentRecord struct {
	PaymentID   string        `gorm:"primaryKey;type:varchar(255)" json:"payment_id"`
	Customer    string        `gorm:"index;not null" json:"customer"`
	AmountCents int64         `gorm:"not null" json:"amount_cents"`
	Currency    string        `gorm:"type:varchar(8);not null" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(16);not null" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShoppingItem is one line of a checkout session request.
type ShoppingItem struct {
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
	PriceInCents       int64  `json:"price_in_cents"`
	Currency           string `json:"currency"`
	Quantity           int64  `json:"quantity"`
}
