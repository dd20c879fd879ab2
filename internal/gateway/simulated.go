package gateway

import (
	"context"
	"time"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

// Delays of the simulated variant.
const (
	SimulatedSignInDelay  = 500 * time.Millisecond
	SimulatedSignOutDelay = 300 * time.Millisecond
	SimulatedWriteDelay   = 500 * time.Millisecond
	SimulatedReadDelay    = 200 * time.Millisecond
)

// MockIdentity is the identity every simulated sign-in resolves to.
var MockIdentity = models.Identity{
	ID:          "mock-user-123",
	Email:       "test@example.com",
	DisplayName: "Test User",
	PhotoURL:    "https://via.placeholder.com/150",
}

func mockResidents() []models.Resident {
	return []models.Resident{
		{ID: "mock-hab-1", FullName: "Juan Pérez", Alias: "Juancho", Sex: models.SexMale, Nationality: "Argentina", Zone: "Centro", TimeOnStreet: "2 años"},
		{ID: "mock-hab-2", FullName: "María Gómez", BirthDate: "1980-04-12", Sex: models.SexFemale, Zone: "Norte", Notes: "Necesita medicación, control semanal"},
		{ID: "mock-hab-3", FullName: "Carlos Ruiz", Sex: models.SexUnspecified, Zone: "Sur", TimeOnStreet: "6 meses"},
	}
}

func mockItems() []models.Item {
	return []models.Item{
		{ID: "1", Title: "Elemento Falso 1", Description: "Esta es una descripción simulada."},
		{ID: "2", Title: "Elemento Falso 2", Description: "Viene de los datos mock."},
		{ID: "3", Title: "Elemento Falso 3", Description: "Perfecto para probar la UI."},
	}
}

// simulatedGateway keeps no state; concurrent calls resolve independently.
type simulatedGateway struct {
	logger *logger.Logger
}

// NewSimulated builds the gateway that answers with canned data.
func NewSimulated(logger *logger.Logger) Gateway {
	return &simulatedGateway{logger: logger}
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (g *simulatedGateway) SignInInteractive(ctx context.Context) (models.Identity, error) {
	g.logger.Debug().Msg("MOCK: simulating federated sign-in")
	if err := sleep(ctx, SimulatedSignInDelay); err != nil {
		return models.Identity{}, &AuthError{Op: "sign-in-interactive", Err: err}
	}
	return MockIdentity, nil
}

func (g *simulatedGateway) SignInWithPassword(ctx context.Context, _, _ string) (models.Identity, error) {
	return g.SignInInteractive(ctx)
}

func (g *simulatedGateway) SignUp(ctx context.Context, _, _, _ string) (models.Identity, error) {
	return g.SignInInteractive(ctx)
}

func (g *simulatedGateway) SignOut(ctx context.Context) error {
	g.logger.Debug().Msg("MOCK: simulating sign-out")
	return sleep(ctx, SimulatedSignOutDelay)
}

func (g *simulatedGateway) SendPasswordReset(context.Context, string) error {
	return &AuthError{Op: "password-reset", Err: ErrNotSupported}
}

// CreateResident waits and succeeds; the document is not kept.
func (g *simulatedGateway) CreateResident(ctx context.Context, resident models.Resident) error {
	g.logger.Debug().Str("nombreCompleto", resident.FullName).Msg("MOCK: saving resident")
	if err := sleep(ctx, SimulatedWriteDelay); err != nil {
		return &PersistenceError{Op: "create-resident", Err: err}
	}
	return nil
}

func (g *simulatedGateway) ListResidents(ctx context.Context) ([]models.Resident, error) {
	if err := sleep(ctx, SimulatedReadDelay); err != nil {
		return nil, &PersistenceError{Op: "list-residents", Err: err}
	}
	return mockResidents(), nil
}

// SubscribeItems delivers the canned items once, asynchronously, unless
// ctx is cancelled first. The returned Unsubscribe does nothing.
func (g *simulatedGateway) SubscribeItems(ctx context.Context, onChange func([]models.Item)) (Unsubscribe, error) {
	go func() {
		if sleep(ctx, SimulatedReadDelay) == nil {
			onChange(mockItems())
		}
	}()
	return func() {}, nil
}
