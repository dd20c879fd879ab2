package gateway

import (
	"context"

	"github.com/refugiapp/refugiapp/models"
)

// Unsubscribe stops a subscription. A callback already scheduled may still
// run after it returns, so callers must tolerate late deliveries.
type Unsubscribe func()

// Gateway is one operation per logical backend call.
type Gateway interface {
	// SignInInteractive runs the federated sign-in flow.
	SignInInteractive(ctx context.Context) (models.Identity, error)

	// SignInWithPassword runs the password grant. An email bound only to a
	// federated provider fails with *AccountProviderMismatch before any
	// password is sent.
	SignInWithPassword(ctx context.Context, email, password string) (models.Identity, error)

	// SignUp creates a password account and signs it in.
	SignUp(ctx context.Context, displayName, email, password string) (models.Identity, error)

	// SignOut ends the provider session.
	SignOut(ctx context.Context) error

	// SendPasswordReset asks the identity directory to email a reset link.
	SendPasswordReset(ctx context.Context, email string) error

	// CreateResident appends the document to the resident collection. The
	// store assigns the id.
	CreateResident(ctx context.Context, resident models.Resident) error

	// ListResidents reads one snapshot of the resident collection.
	ListResidents(ctx context.Context) ([]models.Resident, error)

	// SubscribeItems invokes onChange with the item collection until the
	// returned Unsubscribe is called.
	SubscribeItems(ctx context.Context, onChange func([]models.Item)) (Unsubscribe, error)
}

// IdentityProvider yields the assertion a federated provider issued to the
// user.
type IdentityProvider interface {
	Assertion(ctx context.Context) (string, error)
}
