package grpc

import (
	"context"
	"time"

	"github.com/refugiapp/refugiapp/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name clients may query besides the
// empty overall name.
const ServiceName = "refugiapp.Backend"

// DefaultProbeInterval is how often the store is pinged.
const DefaultProbeInterval = 10 * time.Second

// Pinger reports whether the store answers. *store.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the standard gRPC health service. The reported status
// follows the store's liveness.
type Handler struct {
	health *health.Server
	store  Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The status is NOT_SERVING until the
// first successful probe.
func NewHandler(store Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		store:  store,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// Probe pings the store once and publishes the result.
func (h *Handler) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.store.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "Handler.Probe").Msg("store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Watch probes every interval until ctx is done, then marks every service
// NOT_SERVING.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		h.Probe(probeCtx)
		cancel()

		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
