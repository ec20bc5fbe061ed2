package booking

import (
	"context"
	"time"
)

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints (e1 == s2) do not count, so back-to-back
// bookings are allowed.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict reports whether any active booking on roomID overlaps
// [start, end). excludeID, when non-empty, removes a booking from
// consideration so an edit is not compared against itself. This predicate is
// the sole authority for the no-double-booking invariant; every path that
// creates or moves an active booking consults it before persisting.
func (s *Service) HasConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	existing, err := s.store.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, Wrap(ErrStore, err)
	}
	return len(existing) > 0, nil
}
