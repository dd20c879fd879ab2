package gateway

import (
	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/workers"
)

// New selects the gateway variant once, at composition time. The adapter and
// identity provider are unused by the simulated variant and may be nil.
func New(
	cfg *config.ClientConfig,
	serverAdapter adapter.ServerAdapter,
	identity IdentityProvider,
	ws *workers.Workers,
	logger *logger.Logger,
) Gateway {
	if cfg.App.UseMockData {
		logger.Info().Msg("using simulated service gateway")
		return NewSimulated(logger)
	}

	return NewLive(serverAdapter, identity, ws, cfg.Adapter.RequestTimeout, cfg.Workers.ItemsPollInterval, logger)
}
