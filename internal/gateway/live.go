package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/workers"
	"github.com/refugiapp/refugiapp/models"
)

type liveGateway struct {
	adapter  adapter.ServerAdapter
	identity IdentityProvider
	workers  *workers.Workers

	timeout      time.Duration
	pollInterval time.Duration

	logger *logger.Logger
}

// NewLive builds the gateway backed by the RefugiApp server. Every call is
// bounded by timeout when it is positive. Item subscriptions are registered
// in ws so the session can stop them all at once.
func NewLive(
	serverAdapter adapter.ServerAdapter,
	identity IdentityProvider,
	ws *workers.Workers,
	timeout, pollInterval time.Duration,
	logger *logger.Logger,
) Gateway {
	return &liveGateway{
		adapter:      serverAdapter,
		identity:     identity,
		workers:      ws,
		timeout:      timeout,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

func (g *liveGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *liveGateway) SignInInteractive(ctx context.Context) (models.Identity, error) {
	assertion, err := g.identity.Assertion(ctx)
	if err != nil {
		return models.Identity{}, &AuthError{Op: "sign-in-interactive", Err: err}
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	identity, err := g.adapter.FederatedSignIn(ctx, models.FederatedSignInRequest{
		Provider: models.SignInMethodGoogle,
		IDToken:  assertion,
	})
	if err != nil {
		g.logger.Err(err).Str("func", "liveGateway.SignInInteractive").Msg("federated sign-in rejected")
		return models.Identity{}, &AuthError{Op: "sign-in-interactive", Err: err}
	}
	return identity, nil
}

// SignInWithPassword checks the bound methods first. A failed lookup is
// logged and the password grant goes ahead.
func (g *liveGateway) SignInWithPassword(ctx context.Context, email, password string) (models.Identity, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if mismatch := g.checkProvider(ctx, email); mismatch != nil {
		return models.Identity{}, mismatch
	}

	identity, err := g.adapter.SignIn(ctx, models.SignInRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, adapter.ErrProviderMismatch) {
			return models.Identity{}, &AccountProviderMismatch{Email: email, CanResetPassword: true}
		}
		g.logger.Err(err).Str("func", "liveGateway.SignInWithPassword").Msg("password sign-in rejected")
		return models.Identity{}, &AuthError{Op: "sign-in", Err: err}
	}
	return identity, nil
}

func (g *liveGateway) SignUp(ctx context.Context, displayName, email, password string) (models.Identity, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if mismatch := g.checkProvider(ctx, email); mismatch != nil {
		return models.Identity{}, mismatch
	}

	identity, err := g.adapter.SignUp(ctx, models.SignUpRequest{DisplayName: displayName, Email: email, Password: password})
	if err != nil {
		if errors.Is(err, adapter.ErrProviderMismatch) {
			return models.Identity{}, &AccountProviderMismatch{Email: email, CanResetPassword: true}
		}
		g.logger.Err(err).Str("func", "liveGateway.SignUp").Msg("sign-up rejected")
		return models.Identity{}, &AuthError{Op: "sign-up", Err: err}
	}
	return identity, nil
}

func (g *liveGateway) checkProvider(ctx context.Context, email string) *AccountProviderMismatch {
	methods, err := g.adapter.SignInMethods(ctx, email)
	if err != nil {
		g.logger.Warn().Err(err).Str("func", "liveGateway.checkProvider").Msg("sign-in methods lookup failed")
		return nil
	}
	if models.IsFederatedOnly(methods) {
		return &AccountProviderMismatch{Email: email, CanResetPassword: true}
	}
	return nil
}

func (g *liveGateway) SignOut(ctx context.Context) error {
	g.adapter.SetToken("")
	g.workers.StopAll()
	return nil
}

func (g *liveGateway) SendPasswordReset(ctx context.Context, email string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.adapter.RequestPasswordReset(ctx, email); err != nil {
		g.logger.Err(err).Str("func", "liveGateway.SendPasswordReset").Msg("password reset rejected")
		return &AuthError{Op: "password-reset", Err: err}
	}
	return nil
}

func (g *liveGateway) CreateResident(ctx context.Context, resident models.Resident) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resident.ID = ""
	id, err := g.adapter.CreateResident(ctx, resident)
	if err != nil {
		g.logger.Err(err).Str("func", "liveGateway.CreateResident").Msg("resident was not saved")
		return &PersistenceError{Op: "create-resident", Err: err}
	}

	g.logger.Info().Str("id", id).Msg("resident saved")
	return nil
}

func (g *liveGateway) ListResidents(ctx context.Context) ([]models.Resident, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	residents, err := g.adapter.ListResidents(ctx)
	if err != nil {
		g.logger.Err(err).Str("func", "liveGateway.ListResidents").Msg("resident snapshot failed")
		return nil, &PersistenceError{Op: "list-residents", Err: err}
	}
	return residents, nil
}

// SubscribeItems starts a poller that lives until Unsubscribe, sign-out or
// cancellation of ctx.
func (g *liveGateway) SubscribeItems(ctx context.Context, onChange func([]models.Item)) (Unsubscribe, error) {
	fetch := func(ctx context.Context) ([]models.Item, error) {
		ctx, cancel := g.withTimeout(ctx)
		defer cancel()
		return g.adapter.ListItems(ctx)
	}

	poller := workers.NewItemsPoller(fetch, onChange, g.pollInterval, g.logger)
	g.workers.Go(ctx, poller)

	return poller.Stop, nil
}
