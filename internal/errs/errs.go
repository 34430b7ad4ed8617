// Package errs holds the domain sentinel errors handlers map to HTTP statuses.
package errs

import "errors"

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrArticleNotFound      = errors.New("article not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrToggleNotFound       = errors.New("payment toggle not found")
	ErrPaymentNotFound      = errors.New("payment record not found")

	ErrForbidden             = errors.New("caller is not allowed to perform this operation")
	ErrTechnicianUnavailable = errors.New("technician is not available")
	ErrTicketResolved        = errors.New("ticket is already resolved")
	ErrTicketNotResolved     = errors.New("ticket is not resolved yet")
	ErrFeedbackExists        = errors.New("feedback already submitted")
	ErrStripeNotConfigured   = errors.New("payment provider is not configured")
)
