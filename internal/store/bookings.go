package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// overlapQuery selects active bookings on roomID whose half-open interval
// [start_time, end_time) overlaps [start, end). Two half-open intervals
// overlap iff s1 < e2 AND s2 < e1, so a booking ending exactly at start (or
// starting exactly at end) is not a hit.
func overlapQuery(tx *gorm.DB, roomID string, start, end time.Time, excludeID string) *gorm.DB {
	q := tx.Model(&model.Booking{}).
		Where("room_id = ? AND status = ?", roomID, model.StatusActive).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

// FindOverlapping returns the active bookings on roomID that overlap
// [start, end), excluding excludeID when non-empty.
func (s *gormStore) FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := overlapQuery(s.db.WithContext(ctx), roomID, start, end, excludeID).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return bookings, nil
}

// CreateBooking inserts a booking after re-checking for overlap inside one
// transaction. Returns ErrOverlap when another active booking got there first.
func (s *gormStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return fmt.Errorf("failed to lock room %s: %w", b.RoomID, err)
		}
		var count int64
		if err := overlapQuery(tx, b.RoomID, b.StartTime, b.EndTime, "").Count(&count).Error; err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return ErrOverlap
		}
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil
	})
}

// SaveBooking persists edits to an existing booking, re-checking for overlap
// against everything except the booking itself.
func (s *gormStore) SaveBooking(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return fmt.Errorf("failed to lock room %s: %w", b.RoomID, err)
		}
		var count int64
		if err := overlapQuery(tx, b.RoomID, b.StartTime, b.EndTime, b.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return ErrOverlap
		}
		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save booking %s: %w", b.ID, err)
		}
		return nil
	})
}

// InsertBatch persists generated occurrences. The batch is one transaction
// for insert efficiency; each occurrence was conflict-checked individually
// before it got here.
func (s *gormStore) InsertBatch(ctx context.Context, bookings []model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&bookings).Error; err != nil {
		return fmt.Errorf("failed to insert %d occurrences: %w", len(bookings), err)
	}
	return nil
}

func (s *gormStore) FindBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return &b, nil
}

// FindByParentSeries returns all occurrences whose parent link is seedID.
func (s *gormStore) FindByParentSeries(ctx context.Context, seedID string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).
		Where("parent_id = ?", seedID).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load series for %s: %w", seedID, err)
	}
	return bookings, nil
}

func (s *gormStore) ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Model(&model.Booking{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.RoomID != "" {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if !filter.StartsAt.IsZero() {
		q = q.Where("start_time >= ?", filter.StartsAt)
	}
	if !filter.EndsBy.IsZero() {
		q = q.Where("end_time <= ?", filter.EndsBy)
	}
	var bookings []model.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *gormStore) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelFutureSiblings bulk-cancels every active booking whose parent link is
// one of parentIDs and whose start time is not in the past. Best effort: the
// bulk update either applies or surfaces its error; it is not coordinated
// with any prior single-row cancel.
func (s *gormStore) CancelFutureSiblings(ctx context.Context, parentIDs []string, now time.Time) (int64, error) {
	if len(parentIDs) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("parent_id IN ?", parentIDs).
		Where("start_time >= ? AND status = ?", now, model.StatusActive).
		Update("status", model.StatusCancelled)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to cancel series siblings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) DeleteBooking(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteElapsed flips active bookings whose interval has fully elapsed to
// completed. Driven by the sweeper, not by request handling.
func (s *gormStore) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ? AND end_time <= ?", model.StatusActive, now).
		Update("status", model.StatusCompleted)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to complete elapsed bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}
