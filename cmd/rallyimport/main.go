package main

import (
	"context"
	"flag"
	"os"

	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/utils"
	"github.com/zkraus/bubla/pkg/calendar"
	"github.com/zkraus/bubla/pkg/google"
	"github.com/zkraus/bubla/pkg/rally"
	log "github.com/sirupsen/logrus"
)

// rallyimport loads a season plan CSV and creates one calendar event
// per rally, skipping rallies that already overlap an existing event.

func main() {
	csvPath := flag.String("csv", "data/season.csv", "season plan CSV file")
	configPath := flag.String("config", "./config/application.yaml", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Calendar.CalendarId == "" {
		log.Fatal(&config.ConfigError{Field: "calendar.calendarid"})
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("failed to open season CSV: %v", err)
	}
	defer f.Close()

	rallies, err := rally.LoadSeason(f)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("loaded %d rallies from %s", len(rallies), *csvPath)

	ctx := context.Background()
	cal := google.NewCalendar(cfg.Calendar, utils.SystemClock{})

	created := 0
	for _, seasonRally := range rallies {
		existing, err := cal.EventsOn(ctx, seasonRally.Start, 5)
		if err != nil {
			log.Fatalf("failed to check existing events for %s: %v", seasonRally.Event, err)
		}
		if rally.FindCollision(asScheduled(existing), seasonRally.Interval()) {
			log.Infof("event for %s %s already exists, skipping", seasonRally.Event, seasonRally.Location)
			continue
		}

		draft := seasonRally.Draft()
		if err := cal.CreateEvent(ctx, draft); err != nil {
			log.Fatalf("failed to create event %q: %v", draft.Summary, err)
		}
		log.Infof("created calendar event %q (%s - %s)",
			draft.Summary, draft.Start.Format("2006-01-02"), draft.End.Format("2006-01-02"))
		created++
	}
	log.Infof("import finished, %d event(s) created", created)
}

func asScheduled(events []calendar.Event) []rally.ScheduledEvent {
	result := make([]rally.ScheduledEvent, 0, len(events))
	for _, event := range events {
		result = append(result, rally.ScheduledEvent{
			Name:      event.Summary,
			StartTime: event.Start,
			EndTime:   event.End,
		})
	}
	return result
}
