package calendar

import (
	"time"
)

// Event is a single calendar event with its timing classification
// relative to the instant it was fetched. It is never mutated after
// construction; a stale Event is discarded and refetched.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time

	// Derived against the fetch-time "now". At most one of Active and
	// Upcoming is true; both false means the event has fully elapsed.
	Active   bool
	Upcoming bool
	Remains  time.Duration // End - now, meaningful only when Active
	StartsIn time.Duration // Start - now, meaningful only when Upcoming
}

// NewEvent derives the timing fields against the given now. The whole
// batch of a fetch must share one now snapshot.
func NewEvent(summary, description string, start, end, now time.Time) Event {
	return Event{
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         end,
		Active:      start.Before(now) && now.Before(end),
		Upcoming:    now.Before(start),
		Remains:     end.Sub(now),
		StartsIn:    start.Sub(now),
	}
}

// Draft is an event to be created on the calendar.
type Draft struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// DurationDays truncates a duration to whole days. Truncation, not
// rounding: 2.9 days counts as 2 when compared against thresholds.
func DurationDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
