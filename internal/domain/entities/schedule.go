package entities

import "time"

const (
	// BookingBuffer is the turnover margin applied on both sides of an existing booking.
	BookingBuffer = 2 * time.Hour
	// DeadlineGrace is how long an item stays view-only after its deadline before it is swept.
	DeadlineGrace = time.Hour
)

// Window is a closed time interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns false when a bound is missing or start is after end.
func NewWindow(start, end *time.Time) (Window, bool) {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return Window{}, false
	}
	if start.After(*end) {
		return Window{}, false
	}
	return Window{Start: *start, End: *end}, true
}

// Conflicts reports whether the buffered booking intersects w.
// A gap exactly equal to BookingBuffer does not conflict.
func (w Window) Conflicts(booking Window) bool {
	return booking.Start.Add(-BookingBuffer).Before(w.End) &&
		booking.End.Add(BookingBuffer).After(w.Start)
}

// Contains reports whether t lies within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DeadlineState is the read-side visibility of an item with a deadline.
type DeadlineState string

const (
	DeadlineVisible  DeadlineState = "VISIBLE"
	DeadlineViewOnly DeadlineState = "VIEW_ONLY"
	DeadlineExpired  DeadlineState = "EXPIRED"
)

// DeadlineStateAt: view-only strictly between deadline and deadline+grace, expired from deadline+grace on.
func DeadlineStateAt(deadline *time.Time, now time.Time) DeadlineState {
	if deadline == nil || deadline.IsZero() {
		return DeadlineVisible
	}
	cutoff := deadline.Add(DeadlineGrace)
	switch {
	case !now.Before(cutoff):
		return DeadlineExpired
	case now.After(*deadline):
		return DeadlineViewOnly
	default:
		return DeadlineVisible
	}
}

// DeadlineElapsed reports whether deadline+grace <= now, the sweep predicate.
func DeadlineElapsed(deadline *time.Time, now time.Time) bool {
	return DeadlineStateAt(deadline, now) == DeadlineExpired
}
