package rally

import (
	"context"
	"fmt"
	"strings"

	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/utils"
	"github.com/zkraus/bubla/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// EventSource provides classified calendar events. Results are
// expected to be ordered by start time ascending.
type EventSource interface {
	Events(ctx context.Context, limit int) ([]calendar.Event, error)
}

// ChatPlatform is the destination chat capability: sending channel
// messages and managing guild scheduled events.
type ChatPlatform interface {
	SendMessage(ctx context.Context, channelId string, text string) error
	ScheduledEvents(ctx context.Context, guildId string) ([]ScheduledEvent, error)
	CreateScheduledEvent(ctx context.Context, guildId string, request CreateRequest) error
	UpdatePresence(status string) error
}

// Service implements the rally command surface and the reminder
// pipeline on top of the calendar source and the chat platform.
type Service struct {
	source    EventSource
	chat      ChatPlatform
	formatter Formatter
	clock     utils.Clock

	endSoonDays int
	fetchLimit  int
	guildId     string
	channelId   string
}

func NewService(source EventSource, chat ChatPlatform, cfg config.Application, clock utils.Clock) *Service {
	return &Service{
		source:      source,
		chat:        chat,
		formatter:   Formatter{StartSoonDays: cfg.Reminder.StartSoonDays},
		clock:       clock,
		endSoonDays: cfg.Reminder.EndSoonDays,
		fetchLimit:  cfg.Reminder.FetchLimit,
		guildId:     cfg.Discord.GuildId,
		channelId:   cfg.Discord.ReminderChannelId,
	}
}

// Overview is the bare `rally` command: current events followed by
// upcoming ones.
func (s *Service) Overview(ctx context.Context) (string, error) {
	now, err := s.Now(ctx)
	if err != nil {
		return "", err
	}
	upcoming, err := s.Upcoming(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{now, "", upcoming}, "\n"), nil
}

// Now lists the currently running rally events.
func (s *Service) Now(ctx context.Context) (string, error) {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return "", err
	}
	current := calendar.Current(events)
	if len(current) == 0 {
		return "No current rally events available.", nil
	}
	return "Current rally events:\n" + s.formatter.Render(current), nil
}

// Upcoming lists the rally events that have not started yet.
func (s *Service) Upcoming(ctx context.Context) (string, error) {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return "", err
	}
	upcoming := calendar.Upcoming(events)
	if len(upcoming) == 0 {
		return "No upcoming rally events available.", nil
	}
	return "Upcoming rally events:\n" + s.formatter.Render(upcoming), nil
}

// Next lists upcoming rally events starting within the threshold.
func (s *Service) Next(ctx context.Context) (string, error) {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return "", err
	}
	next := calendar.StartingSoon(events, s.formatter.StartSoonDays)
	if len(next) == 0 {
		return "No next rally events available.", nil
	}
	return "Next rally events:\n" + s.formatter.Render(next), nil
}

// EndsSoon lists current rally events ending within the threshold.
// Returns an empty string when there are none, so the reminder can
// stay silent.
func (s *Service) EndsSoon(ctx context.Context) (string, error) {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return "", err
	}
	endsSoon := calendar.EndingSoon(events, s.endSoonDays)
	if len(endsSoon) == 0 {
		return "", nil
	}
	return "Rally events ends soon:\n" + s.formatter.Render(endsSoon), nil
}

// RunReminder is the daily pipeline: post the started-today or
// ends-soon notification, then mirror events starting soon into the
// guild's scheduled events.
func (s *Service) RunReminder(ctx context.Context) error {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return fmt.Errorf("reminder fetch failed: %w", err)
	}

	message := s.reminderMessage(events)
	if message != "" {
		if err := s.chat.SendMessage(ctx, s.channelId, message); err != nil {
			return fmt.Errorf("failed to send reminder: %w", err)
		}
	}

	return s.SyncScheduledEvents(ctx)
}

func (s *Service) reminderMessage(events []calendar.Event) string {
	today := s.clock.Now().UTC()

	if started := calendar.StartedOn(events, today); len(started) > 0 {
		sections := []string{"Rally events starting today:", s.formatter.Render(started)}
		if current := calendar.Current(events); len(current) > 0 {
			sections = append(sections, "", "Previous period summary:", s.formatter.Render(current))
		}
		return strings.Join(sections, "\n")
	}

	if endsSoon := calendar.EndingSoon(events, s.endSoonDays); len(endsSoon) > 0 {
		return "Rally events ends soon:\n" + s.formatter.Render(endsSoon)
	}
	return ""
}

// SyncScheduledEvents creates guild scheduled events for calendar
// events starting soon that have no overlapping scheduled event yet.
// The destination list is fetched once; within this run the plan is
// computed against that fixed snapshot.
func (s *Service) SyncScheduledEvents(ctx context.Context) error {
	events, err := s.source.Events(ctx, s.fetchLimit)
	if err != nil {
		return fmt.Errorf("sync fetch failed: %w", err)
	}
	next := calendar.StartingSoon(events, s.formatter.StartSoonDays)
	if len(next) == 0 {
		return nil
	}

	existing, err := s.chat.ScheduledEvents(ctx, s.guildId)
	if err != nil {
		return fmt.Errorf("failed to list scheduled events: %w", err)
	}

	for _, request := range Plan(next, existing) {
		if err := s.chat.CreateScheduledEvent(ctx, s.guildId, request); err != nil {
			return fmt.Errorf("failed to create scheduled event %q: %w", request.Name, err)
		}
		log.Infof("created scheduled event %q (%s - %s)",
			request.Name, request.StartTime.Format("2006-01-02"), request.EndTime.Format("2006-01-02"))
	}
	return nil
}

// Help describes the rally command surface.
func (s *Service) Help(prefix string) string {
	return strings.Join([]string{
		"Rally subcommands help",
		fmt.Sprintf("```%srally [<subcommand>]```", prefix),
		"if `<subcommand>` is not specified, shows compound rally events plan, otherwise",
		"* `now`: Shows current rally events",
		"* `upcoming`: Shows upcoming rally events",
		"* `next`: Shows next rally events, starting soon",
		"* `ends`: Shows rally events that ends soon",
		"",
		fmt.Sprintf("🚧 ```%sleaderboard``` -- PREVIEW: display leaderboard on current event", prefix),
		fmt.Sprintf("🚧 ```%sstandings``` -- PREVIEW: display current standings", prefix),
	}, "\n")
}
