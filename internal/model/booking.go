package model

import "time"

// BookingStatus is the lifecycle state of a booking.
// Transitions: active -> cancelled and active -> completed are both terminal.
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Frequency is the recurrence step unit.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RecurrenceRule describes how a seed booking repeats. It is owned by the
// seed booking and immutable once the series has been generated.
type RecurrenceRule struct {
	Frequency  Frequency `json:"frequency"`
	Interval   int       `json:"interval"`
	EndDate    time.Time `json:"endDate"`
	DaysOfWeek []int     `json:"daysOfWeek,omitempty"` // 0-6, Sunday to Saturday; weekly only
}

// Booking represents a claim on one room for the half-open interval
// [StartTime, EndTime). ParentID is nil for a seed booking and points at
// the seed for generated occurrences.
type Booking struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      string          `gorm:"type:uuid;index:idx_bookings_room_time;not null" json:"roomId"`
	UserID      string          `gorm:"index;not null" json:"userId"`
	Title       string          `gorm:"size:256;not null" json:"title"`
	Description string          `json:"description"`
	StartTime   time.Time       `gorm:"index:idx_bookings_room_time;not null" json:"startTime"`
	EndTime     time.Time       `gorm:"index:idx_bookings_room_time;not null" json:"endTime"`
	Attendees   int             `gorm:"not null" json:"attendees"`
	Status      BookingStatus   `gorm:"size:16;not null;default:'active';index" json:"status"`
	IsRecurring bool            `gorm:"not null;default:false" json:"isRecurring"`
	Recurrence  *RecurrenceRule `gorm:"serializer:json" json:"recurrence,omitempty"`
	ParentID    *string         `gorm:"type:uuid;index" json:"parentId,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`

	// Associations
	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}

// Duration returns the booking length.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
