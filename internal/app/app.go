package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zkraus/bubla/internal/config"
	"github.com/zkraus/bubla/internal/rest"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, the Discord gateway, the scheduler,
// and the optional status server lifecycle.
type Application struct {
	cfg       config.Application
	deps      *Dependencies
	statusSrv *http.Server
}

// NewApplication constructs the full bot, ready to Run().
func NewApplication() (*Application, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(cfg)
	if err != nil {
		return nil, err
	}

	var statusSrv *http.Server
	if cfg.Status.Enabled {
		statusSrv = &http.Server{
			Handler:      rest.NewStatusHandler(),
			Addr:         cfg.Status.Addr,
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}

	return &Application{cfg: cfg, deps: deps, statusSrv: statusSrv}, nil
}

// Run opens the gateway, starts the timers, and blocks until the
// process receives an interrupt.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.deps.Router.Register()
	if err := a.deps.DiscordClient.Open(); err != nil {
		return err
	}
	defer a.deps.DiscordClient.Close()

	if a.statusSrv != nil {
		go func() {
			log.Infof("Starting status server on %s", a.statusSrv.Addr)
			if err := a.statusSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("status server failed: %v", err)
			}
		}()
		defer a.statusSrv.Close()
	}

	log.Info("bubla is running")
	return a.deps.Scheduler.Start(ctx)
}
