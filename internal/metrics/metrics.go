package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SchedulerTicks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bubla_scheduler_ticks_total",
		Help: "Number of scheduler ticks fired, by timer.",
	}, []string{"timer"})

	ReminderFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubla_reminder_failures_total",
		Help: "Number of reminder pipeline runs abandoned due to an error.",
	})

	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubla_messages_sent_total",
		Help: "Number of messages sent to the chat platform.",
	})

	ScheduledEventsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubla_scheduled_events_created_total",
		Help: "Number of scheduled events created on the chat platform.",
	})
)

func init() {
	prometheus.MustRegister(SchedulerTicks, ReminderFailures, MessagesSent, ScheduledEventsCreated)
}
