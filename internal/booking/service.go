package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// Notifier dispatches a cancelled booking id to the notification pipeline.
type Notifier interface {
	Dispatch(bookingID string)
}

// Service implements the booking engine: validation, conflict checking,
// recurrence expansion and series lifecycle. It holds no state of its own;
// all shared state lives in the store.
type Service struct {
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates a booking service. notifier may be nil; now defaults to
// time.Now and is injectable for tests.
func NewService(s store.Store, notifier Notifier, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: s, notifier: notifier, now: now}
}

// CreateParams describes a booking creation request.
type CreateParams struct {
	RoomID      string
	UserID      string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   int
	Recurrence  *model.RecurrenceRule
}

// CreateResult reports the seed booking plus the explicit outcome of any
// recurrence expansion, so callers can see what was created and what was
// dropped instead of guessing.
type CreateResult struct {
	Booking              *model.Booking
	CreatedOccurrenceIDs []string
	SkippedOccurrences   int
}

// Create validates and persists a booking, then expands its recurrence rule
// if one was given. Occurrences that conflict are dropped silently (the
// series is best effort, not all-or-nothing); the drop count is reported in
// the result.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	b := &model.Booking{
		ID:          uuid.NewString(),
		RoomID:      p.RoomID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Attendees:   p.Attendees,
		Status:      model.StatusActive,
	}
	if p.Recurrence != nil {
		if err := validateRule(p.Recurrence); err != nil {
			return nil, err
		}
		b.IsRecurring = true
		b.Recurrence = p.Recurrence
	}

	if err := s.validate(ctx, b, s.now(), ""); err != nil {
		return nil, err
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, store.ErrOverlap) {
			return nil, ErrConflict
		}
		return nil, Wrap(ErrStore, err)
	}

	result := &CreateResult{Booking: b}
	if b.IsRecurring {
		created, skipped, err := s.expandSeries(ctx, b, *p.Recurrence)
		if err != nil {
			return nil, err
		}
		result.CreatedOccurrenceIDs = created
		result.SkippedOccurrences = skipped
	}
	return result, nil
}

// expandSeries walks the recurrence expander, conflict-checks each candidate
// interval independently, and persists the survivors as one batch linked to
// the seed. Conflicting candidates are counted, not escalated.
func (s *Service) expandSeries(ctx context.Context, seed *model.Booking, rule model.RecurrenceRule) (createdIDs []string, skipped int, err error) {
	var occurrences []model.Booking

	exp := newExpander(seed, rule)
	for {
		start, end, ok := exp.Next()
		if !ok {
			break
		}

		conflict, err := s.HasConflict(ctx, seed.RoomID, start, end, "")
		if err != nil {
			return nil, 0, err
		}
		// Siblings collected in this expansion are not persisted yet, so
		// check the candidate against them as well.
		for i := range occurrences {
			if overlaps(start, end, occurrences[i].StartTime, occurrences[i].EndTime) {
				conflict = true
				break
			}
		}
		if conflict {
			skipped++
			continue
		}

		occurrences = append(occurrences, model.Booking{
			ID:          uuid.NewString(),
			RoomID:      seed.RoomID,
			UserID:      seed.UserID,
			Title:       seed.Title,
			Description: seed.Description,
			StartTime:   start,
			EndTime:     end,
			Attendees:   seed.Attendees,
			Status:      model.StatusActive,
			IsRecurring: true,
			ParentID:    &seed.ID,
		})
	}

	if err := s.store.InsertBatch(ctx, occurrences); err != nil {
		return nil, 0, Wrap(ErrStore, err)
	}
	for i := range occurrences {
		createdIDs = append(createdIDs, occurrences[i].ID)
	}
	if skipped > 0 {
		log.Printf("recurrence expansion for booking %s: created %d occurrences, dropped %d on conflict",
			seed.ID, len(occurrences), skipped)
	}
	return createdIDs, skipped, nil
}

// UpdateParams carries a partial edit. Nil fields are left unchanged;
// StartTime and EndTime must be supplied together.
type UpdateParams struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Attendees   *int
}

// Update applies an owner's edit to a single booking. Time and attendee
// changes re-run the full validation chain, with the booking excluded from
// its own conflict check.
func (s *Service) Update(ctx context.Context, id, userID string, p UpdateParams) (*model.Booking, error) {
	b, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b.Status != model.StatusActive {
		return nil, ErrBookingNotActive
	}

	revalidate := false
	if p.StartTime != nil && p.EndTime != nil {
		b.StartTime = *p.StartTime
		b.EndTime = *p.EndTime
		revalidate = true
	}
	if p.Attendees != nil {
		b.Attendees = *p.Attendees
		revalidate = true
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}

	if revalidate {
		if err := s.validate(ctx, b, s.now(), b.ID); err != nil {
			return nil, err
		}
	}
	if err := s.store.SaveBooking(ctx, b); err != nil {
		if errors.Is(err, store.ErrOverlap) {
			return nil, ErrConflict
		}
		return nil, Wrap(ErrStore, err)
	}
	return b, nil
}

// CancelResult reports how far a cancellation reached.
type CancelResult struct {
	CancelledSiblings int64
}

// Cancel sets a booking to cancelled. Cancelling twice is a reported error,
// not a no-op. With cascade on a recurring booking, every still-active,
// future-dated sibling of the series is bulk-cancelled as well; past and
// completed occurrences are left untouched. The bulk update is best effort
// and its failure is surfaced even though the single cancel already applied.
func (s *Service) Cancel(ctx context.Context, id, userID string, cascade bool) (*CancelResult, error) {
	b, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case model.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case model.StatusCompleted:
		return nil, ErrBookingNotActive
	}

	if err := s.store.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, Wrap(ErrStore, err)
	}

	result := &CancelResult{}
	if cascade && b.IsRecurring {
		parentIDs := []string{b.ID}
		if b.ParentID != nil {
			parentIDs = append(parentIDs, *b.ParentID)
		}
		n, err := s.store.CancelFutureSiblings(ctx, parentIDs, s.now())
		if err != nil {
			return nil, Wrap(ErrStore, err)
		}
		result.CancelledSiblings = n
	}

	if s.notifier != nil {
		s.notifier.Dispatch(id)
	}
	return result, nil
}

// Delete removes a booking entirely. Owner only.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return Wrap(ErrStore, err)
	}
	return nil
}

// Get returns a booking to its owner.
func (s *Service) Get(ctx context.Context, id, userID string) (*model.Booking, error) {
	return s.getOwned(ctx, id, userID)
}

// Series returns the seed's generated occurrences, ordered by start time.
func (s *Service) Series(ctx context.Context, seedID string) ([]model.Booking, error) {
	siblings, err := s.store.FindByParentSeries(ctx, seedID)
	if err != nil {
		return nil, Wrap(ErrStore, err)
	}
	return siblings, nil
}

// getOwned loads a booking and enforces ownership before any read or
// mutation on it.
func (s *Service) getOwned(ctx context.Context, id, userID string) (*model.Booking, error) {
	b, err := s.store.FindBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, WithMessage(ErrNotFound, "booking not found")
		}
		return nil, Wrap(ErrStore, err)
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}
