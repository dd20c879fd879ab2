package store

import (
	"context"
	"time"

	"github.com/refugiapp/refugiapp/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists accounts of the identity directory and the
// sign-in methods bound to them.
type AccountRepository interface {
	// CreateAccount inserts the account and its Methods atomically.
	CreateAccount(ctx context.Context, account models.Account, providerUID string) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	FindAccountByID(ctx context.Context, userID int64) (models.Account, error)
	// ListSignInMethods returns an empty slice for unknown emails.
	ListSignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error)
	// AddSignInMethod is a no-op when the method is already bound.
	AddSignInMethod(ctx context.Context, userID int64, method models.SignInMethod, providerUID string) error
}

// PasswordResetRepository stores hashed one-shot reset tokens.
type PasswordResetRepository interface {
	SaveReset(ctx context.Context, reset models.PasswordReset) error
	// ResetPassword marks the token used, stores passwordHash on its owner
	// and binds the password method, all in one transaction. Unknown, used
	// and expired (relative to now) tokens yield [ErrResetTokenInvalid].
	ResetPassword(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error)
}

// ResidentRepository is the resident document collection.
type ResidentRepository interface {
	// CreateResident assigns a new id and stores the document.
	CreateResident(ctx context.Context, resident models.Resident) (models.Resident, error)
	// ListResidents returns every document in creation order.
	ListResidents(ctx context.Context) ([]models.Resident, error)
	// CountResidentsByZone returns one {zona, total} record per zone.
	CountResidentsByZone(ctx context.Context) ([]models.Record, error)
}

// ItemRepository is the generic items collection.
type ItemRepository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

// ReportRepository holds report descriptors.
type ReportRepository interface {
	ListReports(ctx context.Context) ([]models.Report, error)
	FindReport(ctx context.Context, id string) (models.Report, error)
}

// IDGenerator assigns document identifiers.
type IDGenerator interface {
	Generate() string
}
