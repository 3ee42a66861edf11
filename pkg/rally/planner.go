package rally

import (
	"time"

	"github.com/zkraus/bubla/pkg/calendar"
)

// ScheduledEvent is an event already present on the destination chat
// platform. Only the fields needed for collision checks are carried.
type ScheduledEvent struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

// CreateRequest asks the destination platform to create a scheduled
// event mirroring a calendar event.
type CreateRequest struct {
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// Overlaps reports whether the scheduled event's interval intersects
// the calendar event's [start, end) range. Touching boundaries do not
// overlap.
func Overlaps(scheduled ScheduledEvent, event calendar.Event) bool {
	if !scheduled.StartTime.Before(event.End) {
		return false
	}
	if !event.Start.Before(scheduled.EndTime) {
		return false
	}
	return true
}

// FindCollision reports whether any scheduled event overlaps the
// calendar event. First match wins.
func FindCollision(scheduled []ScheduledEvent, event calendar.Event) bool {
	for _, s := range scheduled {
		if Overlaps(s, event) {
			return true
		}
	}
	return false
}

// Plan returns creation requests for calendar events that have no
// overlapping scheduled event yet, in fetch order. An existing event
// is not an error; the calendar event is skipped silently. The plan is
// additive only: nothing is ever retracted from the destination.
func Plan(events []calendar.Event, scheduled []ScheduledEvent) []CreateRequest {
	requests := make([]CreateRequest, 0, len(events))
	for _, event := range events {
		if FindCollision(scheduled, event) {
			continue
		}
		requests = append(requests, CreateRequest{
			Name:        event.Summary,
			Description: event.Description,
			StartTime:   event.Start,
			EndTime:     event.End,
		})
	}
	return requests
}
