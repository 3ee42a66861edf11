package rally

import (
	"testing"
	"time"

	"github.com/zkraus/bubla/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSemaphore(t *testing.T) {
	formatter := Formatter{StartSoonDays: 2}
	now := date(2024, time.March, 2)

	t.Run("active event is green", func(t *testing.T) {
		event := calendar.NewEvent("a", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		assert.Equal(t, "🟢", formatter.Semaphore(event))
	})

	t.Run("upcoming within threshold is yellow", func(t *testing.T) {
		event := calendar.NewEvent("a", "", date(2024, time.March, 3), date(2024, time.March, 5), now)
		assert.Equal(t, "🟡", formatter.Semaphore(event))
	})

	t.Run("upcoming beyond threshold is red", func(t *testing.T) {
		event := calendar.NewEvent("a", "", date(2024, time.March, 20), date(2024, time.March, 22), now)
		assert.Equal(t, "🔴", formatter.Semaphore(event))
	})

	t.Run("elapsed event is red", func(t *testing.T) {
		event := calendar.NewEvent("a", "", date(2024, time.February, 1), date(2024, time.February, 3), now)
		assert.Equal(t, "🔴", formatter.Semaphore(event))
	})
}

func TestTiming(t *testing.T) {
	formatter := Formatter{StartSoonDays: 2}

	t.Run("active with full days remaining", func(t *testing.T) {
		now := date(2024, time.March, 2)
		event := calendar.NewEvent("a", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		assert.Equal(t, "remaining: 2d @2024-03-04", formatter.Timing(event))
	})

	t.Run("active with less than a day remaining shows hours", func(t *testing.T) {
		now := time.Date(2024, time.March, 3, 18, 30, 0, 0, time.UTC)
		event := calendar.NewEvent("a", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		assert.Equal(t, "remaining: 5.5h @2024-03-04", formatter.Timing(event))
	})

	t.Run("upcoming shows starts in", func(t *testing.T) {
		now := date(2024, time.March, 2)
		event := calendar.NewEvent("a", "", date(2024, time.March, 5), date(2024, time.March, 7), now)
		assert.Equal(t, "starts in: 3d @2024-03-05", formatter.Timing(event))
	})

	t.Run("elapsed event has no timing", func(t *testing.T) {
		now := date(2024, time.March, 20)
		event := calendar.NewEvent("a", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		assert.Equal(t, "", formatter.Timing(event))
	})
}

func TestRender(t *testing.T) {
	formatter := Formatter{StartSoonDays: 2}
	now := date(2024, time.March, 2)

	t.Run("empty input renders empty string", func(t *testing.T) {
		assert.Equal(t, "", formatter.Render(nil))
		assert.Equal(t, "", formatter.Render([]calendar.Event{}))
	})

	t.Run("active event with description gets a fenced block", func(t *testing.T) {
		event := calendar.NewEvent("Rally Monte Carlo", "6 stages, tarmac", date(2024, time.March, 1), date(2024, time.March, 4), now)
		rendered := formatter.Render([]calendar.Event{event})
		assert.Equal(t, "🟢 **Rally Monte Carlo** remaining: 2d @2024-03-04\n```6 stages, tarmac```", rendered)
	})

	t.Run("far upcoming event keeps its description hidden", func(t *testing.T) {
		event := calendar.NewEvent("Rally Sweden", "snow stages", date(2024, time.March, 20), date(2024, time.March, 22), now)
		rendered := formatter.Render([]calendar.Event{event})
		assert.Equal(t, "🔴 **Rally Sweden** starts in: 18d @2024-03-20", rendered)
	})

	t.Run("multiple events are joined with newlines", func(t *testing.T) {
		events := []calendar.Event{
			calendar.NewEvent("one", "", date(2024, time.March, 1), date(2024, time.March, 4), now),
			calendar.NewEvent("two", "", date(2024, time.March, 10), date(2024, time.March, 12), now),
		}
		rendered := formatter.Render(events)
		assert.Len(t, splitLines(rendered), 2)
	})
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
