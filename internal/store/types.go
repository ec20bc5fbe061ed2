package store

import (
	"time"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// RoomFilter narrows a room listing. Zero values mean "no filter".
type RoomFilter struct {
	MinCapacity   int
	Location      string // case-insensitive substring match
	Amenities     []string
	AvailableOnly bool
}

// BookingFilter narrows a booking listing. Zero values mean "no filter".
type BookingFilter struct {
	UserID   string
	RoomID   string
	Status   model.BookingStatus
	StartsAt time.Time // bookings starting at or after this instant
	EndsBy   time.Time // bookings ending at or before this instant
}
