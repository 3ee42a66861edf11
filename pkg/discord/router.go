package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/zkraus/bubla/pkg/rally"
	log "github.com/sirupsen/logrus"
)

// Router parses prefix commands from guild messages and dispatches
// them to the rally service. Messages from bots (including this one)
// are ignored.
type Router struct {
	client  *Client
	service *rally.Service
	prefix  string
}

func NewRouter(client *Client, service *rally.Service, prefix string) *Router {
	return &Router{
		client:  client,
		service: service,
		prefix:  prefix,
	}
}

// Register attaches the message handler to the gateway session. Must
// be called before Open.
func (r *Router) Register() {
	r.client.session.AddHandler(r.onMessage)
}

func (r *Router) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	command, ok := r.stripPrefix(s, m.Content)
	if !ok {
		return
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return
	}

	ctx := context.Background()
	reply, handled := r.dispatch(ctx, fields)
	if !handled || reply == "" {
		return
	}
	if err := r.client.SendMessage(ctx, m.ChannelID, reply); err != nil {
		log.Errorf("failed to reply in channel %s: %v", m.ChannelID, err)
	}
}

// stripPrefix accepts either the configured command prefix or a
// leading bot mention.
func (r *Router) stripPrefix(s *discordgo.Session, content string) (string, bool) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, r.prefix) {
		return strings.TrimPrefix(content, r.prefix), true
	}
	if s.State != nil && s.State.User != nil {
		mention := s.State.User.Mention()
		if strings.HasPrefix(content, mention) {
			return strings.TrimSpace(strings.TrimPrefix(content, mention)), true
		}
	}
	return "", false
}

// dispatch routes one parsed command. Command failures come back as a
// plain error message for the channel instead of propagating.
func (r *Router) dispatch(ctx context.Context, fields []string) (string, bool) {
	var reply string
	var err error

	switch fields[0] {
	case "rally":
		reply, err = r.rally(ctx, fields[1:])
	case "reminder":
		if err = r.service.RunReminder(ctx); err == nil {
			reply = "Reminder pipeline triggered."
		}
	case "leaderboard":
		reply = rally.Leaderboard()
	case "standings":
		reply = rally.Standings()
	default:
		return "", false
	}

	if err != nil {
		log.Errorf("command %q failed: %v", strings.Join(fields, " "), err)
		return fmt.Sprintf("Command failed: %v", err), true
	}
	return reply, true
}

func (r *Router) rally(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return r.service.Overview(ctx)
	}
	switch args[0] {
	case "now":
		return r.service.Now(ctx)
	case "upcoming":
		return r.service.Upcoming(ctx)
	case "next":
		return r.service.Next(ctx)
	case "ends":
		message, err := r.service.EndsSoon(ctx)
		if err != nil {
			return "", err
		}
		if message == "" {
			message = "No rally events ending soon."
		}
		return message, nil
	default:
		return r.service.Help(r.prefix), nil
	}
}
