package service

import (
	"fmt"

	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/workers"
)

// ClientServices aggregates what the terminal client needs at runtime.
type ClientServices struct {
	Gateway       gateway.Gateway
	ExportService ClientExportService

	// Identity receives the federated assertion the user pastes in the
	// login screen.
	Identity *gateway.PendingAssertion

	Adapter adapter.ServerAdapter
	Workers *workers.Workers
}

// NewClientServices composes the client. The backend adapter is built in
// both modes: the simulated gateway ignores it, while reports are always
// read from the backend and degrade to an empty list when it is absent.
func NewClientServices(cfg *config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	identity := gateway.NewPendingAssertion()
	ws := workers.NewWorkers()
	gw := gateway.New(cfg, serverAdapter, identity, ws, logger)

	saver := export.NewFileSaver(cfg.App.ExportDir, cfg.App.CopyExportPath, logger)

	return &ClientServices{
		Gateway:       gw,
		ExportService: NewClientExportService(gw, serverAdapter, saver, cfg.Adapter.RequestTimeout, logger),
		Identity:      identity,
		Adapter:       serverAdapter,
		Workers:       ws,
	}, nil
}
