package service

import (
	"context"

	"github.com/refugiapp/refugiapp/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the identity directory: password and federated accounts,
// sign-in method lookup, password reset and session tokens.
type AuthService interface {
	// SignUp creates a password account. A federated-only email yields
	// [ErrProviderMismatch]; any other existing account yields
	// store.ErrEmailAlreadyExists.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.Account, error)

	// SignIn runs the password grant. Unknown emails and wrong passwords are
	// both [ErrWrongPassword].
	SignIn(ctx context.Context, req models.SignInRequest) (models.Account, error)

	// FederatedSignIn exchanges a provider assertion for an account, creating
	// or linking it.
	FederatedSignIn(ctx context.Context, req models.FederatedSignInRequest) (models.Account, error)

	// SignInMethods lists the methods bound to email; empty when unknown.
	SignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error)

	// RequestPasswordReset issues a reset token and hands it to the
	// notifier. Unknown emails succeed silently.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset sets a new password from a reset token and binds
	// the password method to the account.
	ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirmRequest) error

	CreateToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ResidentService is the resident document collection.
type ResidentService interface {
	// CreateResident stores resident on behalf of userID and returns it with
	// the assigned id.
	CreateResident(ctx context.Context, userID int64, resident models.Resident) (models.Resident, error)
	ListResidents(ctx context.Context) ([]models.Resident, error)
}

// ItemService serves the generic items collection.
type ItemService interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

// ReportService lists report descriptors and produces their rows.
type ReportService interface {
	ListReports(ctx context.Context) ([]models.Report, error)

	// ReportRows returns the rows of the report with the given id, in the
	// column order they were produced.
	ReportRows(ctx context.Context, id string) ([]models.Record, error)

	// RenderReport renders the report in q.Format (csv when empty).
	RenderReport(ctx context.Context, q models.ReportQuery) (models.RenderedReport, error)
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Notifier delivers password reset tokens to account owners.
type Notifier interface {
	NotifyPasswordReset(ctx context.Context, email, token string) error
}
