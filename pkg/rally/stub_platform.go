package rally

import "context"

type StubChatPlatform struct {
	Messages  []string
	Scheduled []ScheduledEvent
	Created   []CreateRequest
	Presence  string

	SendErr   error
	ListErr   error
	CreateErr error
}

func (s *StubChatPlatform) SendMessage(ctx context.Context, channelId string, text string) error {
	if s.SendErr != nil {
		return s.SendErr
	}
	s.Messages = append(s.Messages, text)
	return nil
}

func (s *StubChatPlatform) ScheduledEvents(ctx context.Context, guildId string) ([]ScheduledEvent, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Scheduled, nil
}

func (s *StubChatPlatform) CreateScheduledEvent(ctx context.Context, guildId string, request CreateRequest) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.Created = append(s.Created, request)
	s.Scheduled = append(s.Scheduled, ScheduledEvent{
		Name:      request.Name,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
	})
	return nil
}

func (s *StubChatPlatform) UpdatePresence(status string) error {
	s.Presence = status
	return nil
}
