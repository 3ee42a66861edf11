package calendar

import "time"

// Classification predicates are pure and rely on the flags derived at
// fetch time. They never recompute Active or Upcoming against a newer
// "now" to avoid drift within a single pipeline run.

// Current returns the events that are running right now.
func Current(events []Event) []Event {
	result := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Active {
			result = append(result, event)
		}
	}
	return result
}

// Upcoming returns the events that have not started yet.
func Upcoming(events []Event) []Event {
	result := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Upcoming {
			result = append(result, event)
		}
	}
	return result
}

// EndingSoon returns current events with at most endSoonDays whole
// days remaining.
func EndingSoon(events []Event, endSoonDays int) []Event {
	result := make([]Event, 0, len(events))
	for _, event := range Current(events) {
		if DurationDays(event.Remains) <= endSoonDays {
			result = append(result, event)
		}
	}
	return result
}

// StartingSoon returns upcoming events starting within startSoonDays
// whole days.
func StartingSoon(events []Event, startSoonDays int) []Event {
	result := make([]Event, 0, len(events))
	for _, event := range Upcoming(events) {
		if DurationDays(event.StartsIn) <= startSoonDays {
			result = append(result, event)
		}
	}
	return result
}

// StartedOn returns upcoming events whose start date falls on the
// given day (UTC date comparison).
func StartedOn(events []Event, day time.Time) []Event {
	y, m, d := day.UTC().Date()
	result := make([]Event, 0, len(events))
	for _, event := range Upcoming(events) {
		ey, em, ed := event.Start.UTC().Date()
		if ey == y && em == m && ed == d {
			result = append(result, event)
		}
	}
	return result
}
