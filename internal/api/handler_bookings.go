package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/booking"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/mw"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

type recurrenceRequest struct {
	Frequency  string    `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Interval   int       `json:"interval" binding:"required,min=1"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	DaysOfWeek []int     `json:"daysOfWeek" binding:"omitempty,dive,min=0,max=6"`
}

type createBookingRequest struct {
	RoomID      string             `json:"roomId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	StartTime   time.Time          `json:"startTime" binding:"required"`
	EndTime     time.Time          `json:"endTime" binding:"required"`
	Attendees   int                `json:"attendees" binding:"required,min=1"`
	IsRecurring bool               `json:"isRecurring"`
	Recurrence  *recurrenceRequest `json:"recurrence"`
}

// PostBooking handles POST /api/bookings.
func (h *Handler) PostBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := booking.CreateParams{
		RoomID:      req.RoomID,
		UserID:      c.GetString(mw.CtxUserID),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Attendees:   req.Attendees,
	}
	if req.IsRecurring && req.Recurrence != nil {
		params.Recurrence = &model.RecurrenceRule{
			Frequency:  model.Frequency(req.Recurrence.Frequency),
			Interval:   req.Recurrence.Interval,
			EndDate:    req.Recurrence.EndDate,
			DaysOfWeek: req.Recurrence.DaysOfWeek,
		}
	}

	res, err := h.svc.Create(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":              res.Booking,
		"createdOccurrenceIds": res.CreatedOccurrenceIDs,
		"skippedOccurrences":   res.SkippedOccurrences,
	})
}

type updateBookingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Attendees   *int       `json:"attendees" binding:"omitempty,min=1"`
}

// PutBooking handles PUT /api/bookings/:id.
func (h *Handler) PutBooking(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.StartTime == nil) != (req.EndTime == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startTime and endTime must be supplied together"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), c.GetString(mw.CtxUserID), booking.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Attendees:   req.Attendees,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type cancelBookingRequest struct {
	Cascade bool `json:"cascade"`
}

// CancelBooking handles PATCH /api/bookings/:id/cancel.
func (h *Handler) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	res, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), c.GetString(mw.CtxUserID), req.Cascade)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Booking cancelled successfully",
		"cancelledSiblings": res.CancelledSiblings,
	})
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(mw.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// GetBooking handles GET /api/bookings/:id. Seed bookings also report their
// generated occurrence ids.
func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"), c.GetString(mw.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"booking": b}
	if b.IsRecurring && b.ParentID == nil {
		siblings, err := h.svc.Series(c.Request.Context(), b.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		ids := make([]string, len(siblings))
		for i := range siblings {
			ids[i] = siblings[i].ID
		}
		resp["occurrenceIds"] = ids
	}
	c.JSON(http.StatusOK, resp)
}

// GetMyBookings handles GET /api/bookings/my-bookings with optional status
// and date-range filters.
func (h *Handler) GetMyBookings(c *gin.Context) {
	filter := store.BookingFilter{
		UserID: c.GetString(mw.CtxUserID),
		Status: model.BookingStatus(c.Query("status")),
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'startDate' timestamp format. Use RFC3339."})
			return
		}
		filter.StartsAt = t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'endDate' timestamp format. Use RFC3339."})
			return
		}
		filter.EndsBy = t
	}

	bookings, err := h.store.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetAllBookings handles GET /api/bookings (admin view) with optional room,
// status and day filters.
func (h *Handler) GetAllBookings(c *gin.Context) {
	filter := store.BookingFilter{
		RoomID: c.Query("room"),
		Status: model.BookingStatus(c.Query("status")),
	}
	if v := c.Query("date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format. Use YYYY-MM-DD."})
			return
		}
		filter.StartsAt = day
		filter.EndsBy = day.AddDate(0, 0, 1)
	}

	bookings, err := h.store.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
