package booking

import (
	"context"
	"errors"
	"time"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// MaxDuration is the longest interval a single booking may claim.
const MaxDuration = 24 * time.Hour

// validate enforces the structural invariants on a candidate booking, in
// order, first failure wins. excludeID is the candidate's own id when the
// candidate is an edit of an existing booking. No side effects.
func (s *Service) validate(ctx context.Context, b *model.Booking, now time.Time, excludeID string) error {
	room, err := s.store.GetRoom(ctx, b.RoomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomUnavailable
		}
		return Wrap(ErrStore, err)
	}
	if !room.IsAvailable {
		return ErrRoomUnavailable
	}
	if b.Attendees > room.Capacity {
		return WithMessage(ErrCapacityExceeded,
			"room capacity is %d, but %d attendees requested", room.Capacity, b.Attendees)
	}
	if !b.StartTime.Before(b.EndTime) {
		return ErrInvalidInterval
	}
	if b.StartTime.Before(now) {
		return ErrPastDated
	}
	if b.EndTime.Sub(b.StartTime) > MaxDuration {
		return ErrDurationExceeded
	}
	conflict, err := s.HasConflict(ctx, b.RoomID, b.StartTime, b.EndTime, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrConflict
	}
	return nil
}
