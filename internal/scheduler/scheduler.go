package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// ReminderPipeline is the daily reconciliation run: post reminders and
// mirror calendar events into the destination platform.
type ReminderPipeline interface {
	RunReminder(ctx context.Context) error
}

// PresenceUpdater sets the bot's visible status.
type PresenceUpdater interface {
	UpdatePresence(status string) error
}

var statuses = []string{
	"John Wayne movie",
	"Watching over baking",
	"DiRT Rally 2.0",
}

// Scheduler drives the two periodic timers: a fixed-interval tick for
// presence rotation and a daily UTC wall-clock tick for the reminder
// pipeline. It waits on the readiness gate before arming either.
type Scheduler struct {
	pipeline ReminderPipeline
	presence PresenceUpdater
	ready    <-chan struct{}

	hour     int
	minute   int
	interval time.Duration
}

func New(pipeline ReminderPipeline, presence PresenceUpdater, ready <-chan struct{}, cfg config.Reminder) *Scheduler {
	return &Scheduler{
		pipeline: pipeline,
		presence: presence,
		ready:    ready,
		hour:     cfg.Hour,
		minute:   cfg.Minute,
		interval: time.Minute,
	}
}

// Start blocks until the context is cancelled. Timers are armed only
// after the readiness gate opens; a cancellation before that returns
// without ever firing.
func (s *Scheduler) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-s.ready:
	}
	log.Infof("Scheduler armed, daily reminder at %02d:%02d UTC", s.hour, s.minute)

	daily := cron.New(cron.WithLocation(time.UTC))
	_, err := daily.AddFunc(fmt.Sprintf("%d %d * * *", s.minute, s.hour), func() {
		s.DailyTick(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}
	daily.Start()
	defer daily.Stop()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			s.MinuteTick()
		}
	}
}

// DailyTick runs the reminder pipeline once. A failure abandons this
// tick only; the timer stays armed and the next tick fires at its
// normal time. No backoff, the daily cadence is the retry.
func (s *Scheduler) DailyTick(ctx context.Context) {
	tickId := uuid.NewString()
	metrics.SchedulerTicks.WithLabelValues("daily").Inc()
	log.Infof("daily reminder tick %s firing", tickId)

	if err := s.pipeline.RunReminder(ctx); err != nil {
		metrics.ReminderFailures.Inc()
		log.Errorf("daily reminder tick %s abandoned: %v", tickId, err)
		return
	}
	log.Infof("daily reminder tick %s completed", tickId)
}

// MinuteTick rotates the presence status.
func (s *Scheduler) MinuteTick() {
	metrics.SchedulerTicks.WithLabelValues("minute").Inc()
	status := statuses[rand.IntN(len(statuses))]
	if err := s.presence.UpdatePresence(status); err != nil {
		log.Warnf("failed to update presence: %v", err)
	}
}
