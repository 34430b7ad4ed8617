package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// respondError maps domain sentinels to HTTP statuses. Anything unrecognized
// is logged and reported as a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrTicketNotFound),
		errors.Is(err, errs.ErrMessageNotFound),
		errors.Is(err, errs.ErrArticleNotFound),
		errors.Is(err, errs.ErrProfileNotFound),
		errors.Is(err, errs.ErrAvailabilityNotFound),
		errors.Is(err, errs.ErrToggleNotFound),
		errors.Is(err, errs.ErrPaymentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrTechnicianUnavailable),
		errors.Is(err, errs.ErrTicketResolved),
		errors.Is(err, errs.ErrTicketNotResolved),
		errors.Is(err, errs.ErrFeedbackExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrStripeNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate key violation"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
