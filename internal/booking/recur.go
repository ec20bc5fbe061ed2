package booking

import (
	"time"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// validateRule rejects malformed recurrence rules before any expansion runs.
// Expansion either runs to completion over the bounded date range or fails
// here outright.
func validateRule(rule *model.RecurrenceRule) error {
	switch rule.Frequency {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
	default:
		return WithMessage(ErrInvalidRecurrence, "unknown frequency %q", rule.Frequency)
	}
	if rule.Interval < 1 {
		return WithMessage(ErrInvalidRecurrence, "interval must be a positive integer, got %d", rule.Interval)
	}
	if rule.EndDate.IsZero() {
		return WithMessage(ErrInvalidRecurrence, "end date is required")
	}
	for _, day := range rule.DaysOfWeek {
		if day < 0 || day > 6 {
			return WithMessage(ErrInvalidRecurrence, "day of week %d out of range 0-6", day)
		}
	}
	return nil
}

// expander lazily yields the occurrence intervals of a recurring series.
// Each call to Next advances the cursor one rule step from where the previous
// call left it; the sequence is finite and cannot be restarted.
type expander struct {
	cursor   time.Time
	duration time.Duration
	rule     model.RecurrenceRule
	done     bool
}

// newExpander seeds the cursor at the seed booking's start. The seed itself
// is not an emitted occurrence; the first Next already steps past it.
func newExpander(seed *model.Booking, rule model.RecurrenceRule) *expander {
	return &expander{
		cursor:   seed.StartTime,
		duration: seed.Duration(),
		rule:     rule,
	}
}

// Next returns the next occurrence interval, or ok=false once the cursor has
// stepped past the rule's (inclusive) end date. The cursor value that causes
// termination is never emitted.
//
// A weekly rule with a non-empty weekday filter drops any stepped-to date
// whose weekday is not in the filter and keeps stepping; it does not
// enumerate every matching weekday inside the step window. With interval=1
// every step lands on the seed's weekday, so such a filter can only drop
// occurrences, never add them. Kept as-is deliberately; see DESIGN.md.
func (e *expander) Next() (start, end time.Time, ok bool) {
	if e.done {
		return time.Time{}, time.Time{}, false
	}
	for {
		e.cursor = e.step(e.cursor)
		if e.cursor.After(e.rule.EndDate) {
			e.done = true
			return time.Time{}, time.Time{}, false
		}
		if e.rule.Frequency == model.FrequencyWeekly &&
			len(e.rule.DaysOfWeek) > 0 &&
			!containsDay(e.rule.DaysOfWeek, int(e.cursor.Weekday())) {
			continue
		}
		return e.cursor, e.cursor.Add(e.duration), true
	}
}

// step advances one rule interval. Monthly stepping uses calendar month
// arithmetic with Go's normalization, so a day-of-month past the end of the
// target month rolls over (Jan 31 + 1 month = Mar 2 or 3). Pinned by a test.
func (e *expander) step(t time.Time) time.Time {
	switch e.rule.Frequency {
	case model.FrequencyDaily:
		return t.AddDate(0, 0, e.rule.Interval)
	case model.FrequencyWeekly:
		return t.AddDate(0, 0, 7*e.rule.Interval)
	default: // monthly; validated upstream
		return t.AddDate(0, e.rule.Interval, 0)
	}
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
