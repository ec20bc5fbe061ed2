package model

import "time"

// Room represents a bookable meeting room.
type Room struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Location    string    `gorm:"size:256;not null" json:"location"`
	Amenities   []string  `gorm:"serializer:json" json:"amenities"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
