package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

func (s *gormStore) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}
	return &room, nil
}

func (s *gormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Model(&model.Room{})
	if filter.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	var rooms []model.Room
	if err := q.Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	// Amenities live in a JSON column, so the membership filter is applied
	// here rather than in SQL.
	if len(filter.Amenities) == 0 {
		return rooms, nil
	}
	filtered := rooms[:0]
	for _, room := range rooms {
		if hasAnyAmenity(room.Amenities, filter.Amenities) {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

func hasAnyAmenity(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateRoom(ctx context.Context, room *model.Room) error {
	res := s.db.WithContext(ctx).Save(room)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %s: %w", room.ID, res.Error)
	}
	return nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountFutureActiveBookings guards room deletion: a room with upcoming active
// bookings must not disappear under them.
func (s *gormStore) CountFutureActiveBookings(ctx context.Context, roomID string, now time.Time) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("room_id = ? AND status = ? AND start_time >= ?", roomID, model.StatusActive, now).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active bookings for room %s: %w", roomID, err)
	}
	return count, nil
}
