package rally

import (
	"context"
	"testing"
	"time"

	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/utils"
	"github.com/zkraus/bubla/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Application {
	return config.Application{
		Discord: config.Discord{
			GuildId:           "guild-1",
			ReminderChannelId: "channel-1",
			CommandPrefix:     "!",
		},
		Reminder: config.Reminder{
			EndSoonDays:   2,
			StartSoonDays: 2,
			FetchLimit:    10,
		},
	}
}

func TestCommands(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 2)
	clock := &utils.MockClock{FixedNow: now}

	active := calendar.NewEvent("Rally Monte Carlo", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
	soon := calendar.NewEvent("Rally Sweden", "", date(2024, time.March, 3), date(2024, time.March, 5), now)
	far := calendar.NewEvent("Rally Portugal", "", date(2024, time.March, 20), date(2024, time.March, 22), now)

	t.Run("now renders current events", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{active, soon, far}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		message, err := service.Now(ctx)
		require.NoError(t, err)
		assert.Contains(t, message, "Current rally events:")
		assert.Contains(t, message, "Rally Monte Carlo")
		assert.NotContains(t, message, "Rally Sweden")
	})

	t.Run("now falls back when nothing is running", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{far}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		message, err := service.Now(ctx)
		require.NoError(t, err)
		assert.Equal(t, "No current rally events available.", message)
	})

	t.Run("next keeps only events starting soon", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{active, soon, far}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		message, err := service.Next(ctx)
		require.NoError(t, err)
		assert.Contains(t, message, "Rally Sweden")
		assert.NotContains(t, message, "Rally Portugal")
	})

	t.Run("ends soon is silent when nothing qualifies", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{far}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		message, err := service.EndsSoon(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", message)
	})

	t.Run("overview combines current and upcoming", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{active, soon}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		message, err := service.Overview(ctx)
		require.NoError(t, err)
		assert.Contains(t, message, "Current rally events:")
		assert.Contains(t, message, "Upcoming rally events:")
	})

	t.Run("fetch failure is surfaced to the caller", func(t *testing.T) {
		source := &StubEventSource{Err: &calendar.RemoteError{Status: 500, Err: assert.AnError}}
		service := NewService(source, &StubChatPlatform{}, testConfig(), clock)

		_, err := service.Now(ctx)
		require.Error(t, err)
	})
}

func TestRunReminder(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 2)
	clock := &utils.MockClock{FixedNow: now}

	t.Run("posts ends-soon message and mirrors upcoming events", func(t *testing.T) {
		endingSoon := calendar.NewEvent("Rally Monte Carlo", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		startingSoon := calendar.NewEvent("Rally Sweden", "", date(2024, time.March, 3), date(2024, time.March, 5), now)
		source := &StubEventSource{EventsList: []calendar.Event{endingSoon, startingSoon}}
		chat := &StubChatPlatform{}
		service := NewService(source, chat, testConfig(), clock)

		require.NoError(t, service.RunReminder(ctx))

		require.Len(t, chat.Messages, 1)
		assert.Contains(t, chat.Messages[0], "Rally events ends soon:")
		assert.Contains(t, chat.Messages[0], "Rally Monte Carlo")

		require.Len(t, chat.Created, 1)
		assert.Equal(t, "Rally Sweden", chat.Created[0].Name)
	})

	t.Run("announces events starting today with the previous period summary", func(t *testing.T) {
		startsToday := calendar.NewEvent("Rally Sweden", "", time.Date(2024, time.March, 2, 18, 0, 0, 0, time.UTC), date(2024, time.March, 5), now)
		running := calendar.NewEvent("Rally Monte Carlo", "", date(2024, time.March, 1), date(2024, time.March, 4), now)
		source := &StubEventSource{EventsList: []calendar.Event{running, startsToday}}
		chat := &StubChatPlatform{}
		service := NewService(source, chat, testConfig(), clock)

		require.NoError(t, service.RunReminder(ctx))

		require.Len(t, chat.Messages, 1)
		assert.Contains(t, chat.Messages[0], "Rally events starting today:")
		assert.Contains(t, chat.Messages[0], "Previous period summary:")
	})

	t.Run("stays silent when nothing ends soon", func(t *testing.T) {
		far := calendar.NewEvent("Rally Portugal", "", date(2024, time.March, 20), date(2024, time.March, 22), now)
		source := &StubEventSource{EventsList: []calendar.Event{far}}
		chat := &StubChatPlatform{}
		service := NewService(source, chat, testConfig(), clock)

		require.NoError(t, service.RunReminder(ctx))
		assert.Empty(t, chat.Messages)
		assert.Empty(t, chat.Created)
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		source := &StubEventSource{Err: &calendar.AuthError{Err: assert.AnError}}
		chat := &StubChatPlatform{}
		service := NewService(source, chat, testConfig(), clock)

		require.Error(t, service.RunReminder(ctx))
		assert.Empty(t, chat.Messages)
	})
}

func TestSyncScheduledEvents(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 2)
	clock := &utils.MockClock{FixedNow: now}
	startingSoon := calendar.NewEvent("Rally Sweden", "", date(2024, time.March, 3), date(2024, time.March, 5), now)

	t.Run("skips events already scheduled", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{startingSoon}}
		chat := &StubChatPlatform{Scheduled: []ScheduledEvent{
			{Name: "Rally Sweden", StartTime: date(2024, time.March, 3), EndTime: date(2024, time.March, 5)},
		}}
		service := NewService(source, chat, testConfig(), clock)

		require.NoError(t, service.SyncScheduledEvents(ctx))
		assert.Empty(t, chat.Created)
	})

	t.Run("second run creates nothing new", func(t *testing.T) {
		source := &StubEventSource{EventsList: []calendar.Event{startingSoon}}
		chat := &StubChatPlatform{}
		service := NewService(source, chat, testConfig(), clock)

		require.NoError(t, service.SyncScheduledEvents(ctx))
		require.Len(t, chat.Created, 1)

		require.NoError(t, service.SyncScheduledEvents(ctx))
		assert.Len(t, chat.Created, 1)
	})
}
