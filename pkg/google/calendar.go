package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/utils"
	"github.com/zkraus/bubla/pkg/calendar"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	serviceTTL = 60 * time.Second
	listingTTL = 600 * time.Second

	dateLayout = "2006-01-02"
)

// backend is the raw Google Calendar API boundary, kept narrow so the
// fetcher can be exercised in tests without a live service.
type backend interface {
	listEvents(ctx context.Context, timeMin, timeMax string, limit int64) ([]*gcal.Event, error)
	insertEvent(ctx context.Context, event *gcal.Event) error
}

// Calendar fetches events for the configured calendar, mapping raw
// records into calendar.Event at the fetch boundary. Listings are
// cached per (window, limit) with a TTL; a newly created event may not
// show up until the TTL expires, which is accepted staleness.
type Calendar struct {
	backend  backend
	clock    utils.Clock
	timezone string
	listings *expirable.LRU[listingKey, []calendar.Event]
}

type listingKey struct {
	windowStart string
	limit       int
}

func NewCalendar(cfg config.Calendar, clock utils.Clock) *Calendar {
	auth := NewAuthenticator(cfg.CredentialsFile, cfg.TokenFile)
	return &Calendar{
		backend: &gcalBackend{
			calendarId: cfg.CalendarId,
			auth:       auth,
			services:   expirable.NewLRU[string, *gcal.Service](1, nil, serviceTTL),
		},
		clock:    clock,
		timezone: cfg.Timezone,
		listings: expirable.NewLRU[listingKey, []calendar.Event](100, nil, listingTTL),
	}
}

// Events lists events from now on, ordered by start time ascending.
func (c *Calendar) Events(ctx context.Context, limit int) ([]calendar.Event, error) {
	return c.fetch(ctx, time.Time{}, limit)
}

// EventsOn lists events within the day starting at the given instant.
func (c *Calendar) EventsOn(ctx context.Context, day time.Time, limit int) ([]calendar.Event, error) {
	return c.fetch(ctx, day, limit)
}

func (c *Calendar) fetch(ctx context.Context, windowStart time.Time, limit int) ([]calendar.Event, error) {
	key := listingKey{limit: limit}
	if !windowStart.IsZero() {
		key.windowStart = windowStart.UTC().Format(time.RFC3339)
	}
	if events, ok := c.listings.Get(key); ok {
		log.Debugf("calendar listing cache hit for %+v", key)
		return events, nil
	}

	// One snapshot for the window start and for every derived timing
	// field in the batch.
	now := c.clock.Now().UTC()

	var timeMin, timeMax string
	if windowStart.IsZero() {
		timeMin = now.Format(time.RFC3339)
	} else {
		timeMin = windowStart.UTC().Format(time.RFC3339)
		timeMax = windowStart.UTC().Add(24 * time.Hour).Format(time.RFC3339)
	}

	items, err := c.backend.listEvents(ctx, timeMin, timeMax, int64(limit))
	if err != nil {
		return nil, err
	}

	events := make([]calendar.Event, 0, len(items))
	for _, item := range items {
		start, err := parseEventTime(item.Start)
		if err != nil {
			log.Warnf("skipping event with unparseable start: %s (%v)", item.Summary, err)
			continue
		}
		end, err := parseEventTime(item.End)
		if err != nil {
			log.Warnf("skipping event with unparseable end: %s (%v)", item.Summary, err)
			continue
		}
		events = append(events, calendar.NewEvent(item.Summary, item.Description, start, end, now))
	}

	c.listings.Add(key, events)
	return events, nil
}

// CreateEvent creates an all-day event range on the calendar. The
// listing cache is not invalidated; the event becomes visible once the
// TTL expires.
func (c *Calendar) CreateEvent(ctx context.Context, draft calendar.Draft) error {
	return c.backend.insertEvent(ctx, &gcal.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Start: &gcal.EventDateTime{
			Date:     draft.Start.Format(dateLayout),
			TimeZone: c.timezone,
		},
		End: &gcal.EventDateTime{
			Date:     draft.End.Format(dateLayout),
			TimeZone: c.timezone,
		},
	})
}

func parseEventTime(t *gcal.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if t.Date != "" {
		return time.Parse(dateLayout, t.Date)
	}
	return time.Parse(time.RFC3339, t.DateTime)
}

type gcalBackend struct {
	calendarId string
	auth       *Authenticator
	services   *expirable.LRU[string, *gcal.Service]
}

const serviceKey = "service"

func (b *gcalBackend) service(ctx context.Context) (*gcal.Service, error) {
	if service, ok := b.services.Get(serviceKey); ok {
		return service, nil
	}

	client, err := b.auth.Client(ctx)
	if err != nil {
		return nil, err
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &calendar.AuthError{Err: fmt.Errorf("unable to build calendar client: %w", err)}
	}

	b.services.Add(serviceKey, service)
	return service, nil
}

func (b *gcalBackend) listEvents(ctx context.Context, timeMin, timeMax string, limit int64) ([]*gcal.Event, error) {
	service, err := b.service(ctx)
	if err != nil {
		return nil, err
	}

	call := service.Events.List(b.calendarId).
		TimeMin(timeMin).
		MaxResults(limit).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if timeMax != "" {
		call = call.TimeMax(timeMax)
	}

	result, err := call.Do()
	if err != nil {
		err := remoteError(fmt.Errorf("unable to retrieve events from Google Calendar: %w", err))
		log.Error(err)
		return nil, err
	}
	return result.Items, nil
}

func (b *gcalBackend) insertEvent(ctx context.Context, event *gcal.Event) error {
	service, err := b.service(ctx)
	if err != nil {
		return err
	}

	created, err := service.Events.Insert(b.calendarId, event).Context(ctx).Do()
	if err != nil {
		err := remoteError(fmt.Errorf("unable to insert event in Google Calendar: %w", err))
		log.Error(err)
		return err
	}
	log.Debugf("event created: %s", created.HtmlLink)
	return nil
}

func remoteError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &calendar.RemoteError{Status: apiErr.Code, Err: err}
	}
	return &calendar.RemoteError{Err: err}
}
