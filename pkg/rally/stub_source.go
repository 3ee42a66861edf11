package rally

import (
	"context"

	"github.com/zkraus/bubla/pkg/calendar"
)

type StubEventSource struct {
	EventsList []calendar.Event
	Err        error
	Calls      int
}

func (s *StubEventSource) Events(ctx context.Context, limit int) ([]calendar.Event, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.EventsList) > limit {
		return s.EventsList[:limit], nil
	}
	return s.EventsList, nil
}
