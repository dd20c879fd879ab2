package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/internal/tui"
)

// UI is the interactive front end the app hands control to.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client services are required")
	}
	if ui == nil {
		return nil, errors.New("ui is required")
	}
	return &App{services: services, ui: ui, logger: logger}, nil
}

// Run hands the terminal to the UI and stops background workers once it
// returns. Quitting from the UI is a normal exit.
func (a *App) Run(ctx context.Context) error {
	defer a.stopWorkers()

	err := a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit):
		a.logger.Info().Str("func", "App.Run").Msg("client closed")
		return nil
	case errors.Is(err, context.Canceled):
		a.logger.Info().Str("func", "App.Run").Msg("client interrupted")
		return nil
	default:
		return fmt.Errorf("run ui: %w", err)
	}
}

func (a *App) stopWorkers() {
	if a.services.Workers != nil {
		a.services.Workers.StopAll()
	}
}
