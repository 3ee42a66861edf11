package rally

import (
	"fmt"
	"strings"
	"time"

	"github.com/zkraus/bubla/pkg/calendar"
)

const (
	semaphoreRed    = "🔴"
	semaphoreYellow = "🟡"
	semaphoreGreen  = "🟢"
)

// Formatter renders events into the status lines posted to the chat
// channel.
type Formatter struct {
	StartSoonDays int
}

// Semaphore is a three-level priority indicator: green for a running
// event, yellow for one starting within the threshold, red otherwise.
func (f Formatter) Semaphore(event calendar.Event) string {
	semaphore := semaphoreRed
	if event.Active {
		semaphore = semaphoreGreen
	}
	if event.Upcoming && calendar.DurationDays(event.StartsIn) <= f.StartSoonDays {
		semaphore = semaphoreYellow
	}
	return semaphore
}

// Timing describes how much time remains or how soon the event starts.
func (f Formatter) Timing(event calendar.Event) string {
	if event.Active {
		return fmt.Sprintf("remaining: %s @%s", formatDuration(event.Remains), event.End.Format("2006-01-02"))
	}
	if event.Upcoming {
		return fmt.Sprintf("starts in: %s @%s", formatDuration(event.StartsIn), event.Start.Format("2006-01-02"))
	}
	return ""
}

func (f Formatter) soon(event calendar.Event) bool {
	if event.Active {
		return true
	}
	return event.Upcoming && calendar.DurationDays(event.StartsIn) <= f.StartSoonDays
}

// Render produces one line per event; events that are running or
// starting soon get their description appended as a fenced block.
func (f Formatter) Render(events []calendar.Event) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("%s **%s** %s", f.Semaphore(event), event.Summary, f.Timing(event)))
		if event.Description != "" && f.soon(event) {
			lines = append(lines, fmt.Sprintf("```%s```", event.Description))
		}
	}
	return strings.Join(lines, "\n")
}

// formatDuration shows whole days when at least one remains, otherwise
// fractional hours to one decimal.
func formatDuration(d time.Duration) string {
	days := calendar.DurationDays(d)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
