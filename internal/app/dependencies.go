package app

import (
	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/scheduler"
	"github.com/zkraus/bubla/internal/utils"
	"github.com/zkraus/bubla/pkg/discord"
	"github.com/zkraus/bubla/pkg/google"
	"github.com/zkraus/bubla/pkg/rally"
)

// Dependencies holds all services and collaborators of the bot.
type Dependencies struct {
	Calendar      *google.Calendar
	DiscordClient *discord.Client
	RallyService  *rally.Service
	Router        *discord.Router
	Scheduler     *scheduler.Scheduler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all collaborators.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.Calendar = google.NewCalendar(cfg.Calendar, deps.Clock)

	client, err := discord.NewClient(cfg.Discord)
	if err != nil {
		return nil, err
	}
	deps.DiscordClient = client

	deps.RallyService = rally.NewService(deps.Calendar, client, cfg, deps.Clock)
	deps.Router = discord.NewRouter(client, deps.RallyService, cfg.Discord.CommandPrefix)
	deps.Scheduler = scheduler.New(deps.RallyService, client, client.Ready(), cfg.Reminder)

	return deps, nil
}
