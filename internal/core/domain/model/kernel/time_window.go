package kernel

import (
	"fmt"
	"time"
)

// TimeWindow is a closed interval [Start, End] of instants. Both endpoints belong to
// the window. A window whose start is after its end is empty; it is not an error.
//
// Instants are normalized to UTC so windows built from timestamps in different zones
// compare and print consistently.
//
// Example:
//
//	day := kernel.NewTimeWindow(
//	    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
//	)
//	day.Contains(placedAt)
type TimeWindow struct {
	start time.Time
	end   time.Time
}

// NewTimeWindow builds the closed interval [start, end].
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{start: start.UTC(), end: end.UTC()}
}

// Start returns the inclusive lower bound.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the inclusive upper bound.
func (w TimeWindow) End() time.Time {
	return w.end
}

// IsEmpty reports whether no instant can fall inside the window.
func (w TimeWindow) IsEmpty() bool {
	return w.start.After(w.end)
}

// Contains reports whether t lies within [Start, End].
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s]", w.start.Format(time.RFC3339Nano), w.end.Format(time.RFC3339Nano))
}
