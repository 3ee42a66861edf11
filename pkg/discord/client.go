package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/metrics"
	"github.com/zkraus/bubla/pkg/rally"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// scheduledEventLocation is shown on external guild scheduled events.
const scheduledEventLocation = "DiRT Rally 2.0"

// Client wraps the Discord gateway session and implements the chat
// platform capability the rally service consumes. Outbound channel
// messages go through a rate limiter so a burst of reminders cannot
// trip the platform limits.
type Client struct {
	session *discordgo.Session
	limiter *rate.Limiter

	readyOnce sync.Once
	ready     chan struct{}
}

func NewClient(cfg config.Discord) (*Client, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	client := &Client{
		session: session,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		ready:   make(chan struct{}),
	}
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		log.Info("Discord gateway ready")
		client.readyOnce.Do(func() { close(client.ready) })
	})
	return client, nil
}

// Open connects to the gateway and starts event processing.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord gateway: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// Ready is closed once the gateway reports readiness. The scheduler
// waits on it before arming its timers.
func (c *Client) Ready() <-chan struct{} {
	return c.ready
}

func (c *Client) SendMessage(ctx context.Context, channelId string, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := c.session.ChannelMessageSend(channelId, text); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelId, err)
	}
	metrics.MessagesSent.Inc()
	return nil
}

func (c *Client) ScheduledEvents(_ context.Context, guildId string) ([]rally.ScheduledEvent, error) {
	events, err := c.session.GuildScheduledEvents(guildId, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled events for guild %s: %w", guildId, err)
	}

	result := make([]rally.ScheduledEvent, 0, len(events))
	for _, event := range events {
		endTime := event.ScheduledStartTime
		if event.ScheduledEndTime != nil {
			endTime = *event.ScheduledEndTime
		}
		result = append(result, rally.ScheduledEvent{
			Name:      event.Name,
			StartTime: event.ScheduledStartTime,
			EndTime:   endTime,
		})
	}
	return result, nil
}

func (c *Client) CreateScheduledEvent(_ context.Context, guildId string, request rally.CreateRequest) error {
	_, err := c.session.GuildScheduledEventCreate(guildId, &discordgo.GuildScheduledEventParams{
		Name:               request.Name,
		Description:        request.Description,
		ScheduledStartTime: &request.StartTime,
		ScheduledEndTime:   &request.EndTime,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityMetadata: &discordgo.GuildScheduledEventEntityMetadata{
			Location: scheduledEventLocation,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduled event %q in guild %s: %w", request.Name, guildId, err)
	}
	metrics.ScheduledEventsCreated.Inc()
	return nil
}

func (c *Client) UpdatePresence(status string) error {
	return c.session.UpdateGameStatus(0, status)
}
