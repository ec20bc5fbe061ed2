package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// GetRooms handles GET /api/rooms with optional capacity, location and
// amenity filters. Only available rooms are listed.
func (h *Handler) GetRooms(c *gin.Context) {
	filter := store.RoomFilter{AvailableOnly: true}
	if v := c.Query("capacity"); v != "" {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid capacity"})
			return
		}
		filter.MinCapacity = capacity
	}
	filter.Location = c.Query("location")
	if v := c.Query("amenities"); v != "" {
		filter.Amenities = strings.Split(v, ",")
	}

	rooms, err := h.store.ListRooms(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.store.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRoomAvailability handles GET /api/rooms/:id/availability?date=YYYY-MM-DD,
// listing the room's active bookings inside that day.
func (h *Handler) GetRoomAvailability(c *gin.Context) {
	dateParam := c.Query("date")
	if dateParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}
	day, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format. Use YYYY-MM-DD."})
		return
	}

	bookings, err := h.store.ListBookings(c.Request.Context(), store.BookingFilter{
		RoomID:   c.Param("id"),
		Status:   model.StatusActive,
		StartsAt: day,
		EndsBy:   day.AddDate(0, 0, 1),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type roomRequest struct {
	Name        string   `json:"name" binding:"required"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	Location    string   `json:"location" binding:"required"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
	IsAvailable *bool    `json:"isAvailable"`
}

// PostRoom handles POST /api/rooms (admin only).
func (h *Handler) PostRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &model.Room{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Amenities:   req.Amenities,
		Description: req.Description,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := h.store.CreateRoom(c.Request.Context(), room); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PutRoom handles PUT /api/rooms/:id (admin only).
func (h *Handler) PutRoom(c *gin.Context) {
	room, err := h.store.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Location = req.Location
	room.Amenities = req.Amenities
	room.Description = req.Description
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := h.store.UpdateRoom(c.Request.Context(), room); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id (admin only). A room with
// upcoming active bookings cannot be deleted.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.GetRoom(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		respondError(c, err)
		return
	}

	active, err := h.store.CountFutureActiveBookings(c.Request.Context(), id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	if active > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete room with active bookings"})
		return
	}

	if err := h.store.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
