package api

import (
	"errors"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/booking"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc     *booking.Service
	store   store.Store
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *booking.Service, s store.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		svc:     svc,
		store:   s,
		webpush: webpushOptions,
	}
}

// respondError maps a service error onto its HTTP status and a stable error
// body. Anything that is not a typed booking error reports as a storage
// failure rather than leaking internals.
func respondError(c *gin.Context, err error) {
	var e *booking.Error
	if !errors.As(err, &e) {
		e = booking.FromError(err)
	}
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message, "code": e.Code})
}
