package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

var accountColumns = []string{"user_id", "email", "display_name", "photo_url", "password_hash", "created_at"}

// accountRepository is the SQL implementation of [AccountRepository] over
// the "accounts" and "sign_in_methods" tables.
type accountRepository struct {
	*DB
	logger *logger.Logger
}

func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateAccount inserts the account row and one sign_in_methods row per
// method in a single transaction. providerUID is recorded for federated
// methods only.
//
// Unique violation on email → [ErrEmailAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account, providerUID string) (models.Account, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to begin transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, r.classify(err))
	}
	defer func() { _ = tx.Rollback() }()

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.builder.
		Insert(account.TableName()).
		Columns("email", "display_name", "photo_url", "password_hash", "created_at").
		Values(account.Email, account.DisplayName, account.PhotoURL, account.PasswordHash, account.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&account.UserID); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error inserting account")
		if isUniqueViolation(err) {
			return models.Account{}, ErrEmailAlreadyExists
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	for _, method := range account.Methods {
		uid := ""
		if method != models.SignInMethodPassword {
			uid = providerUID
		}
		if err = r.insertSignInMethod(ctx, tx, account.UserID, method, uid); err != nil {
			log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("method", string(method)).Msg("error inserting sign-in method")
			return models.Account{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to commit transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return account, nil
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"email": email})
}

func (r *accountRepository) FindAccountByID(ctx context.Context, userID int64) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"user_id": userID})
}

func (r *accountRepository) findAccount(ctx context.Context, where sq.Eq) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(accountColumns...).
		From(models.Account{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&account.UserID,
		&account.Email,
		&account.DisplayName,
		&account.PhotoURL,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("error scanning account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, r.classify(err))
	}

	account.Methods, err = r.methodsByUserID(ctx, account.UserID)
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// ListSignInMethods joins accounts with their methods. An unknown email is
// not an error.
func (r *accountRepository) ListSignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("m.method").
		From("sign_in_methods m").
		Join("accounts a ON a.user_id = m.user_id").
		Where(sq.Eq{"a.email": email}).
		OrderBy("m.method").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	methods, err := r.scanMethods(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListSignInMethods").Msg("error listing sign-in methods")
		return nil, err
	}

	return methods, nil
}

func (r *accountRepository) AddSignInMethod(ctx context.Context, userID int64, method models.SignInMethod, providerUID string) error {
	if err := r.insertSignInMethod(ctx, r.DB, userID, method, providerUID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*accountRepository.AddSignInMethod").
			Int64("user_id", userID).
			Msg("error adding sign-in method")
		return err
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (db *DB) insertSignInMethod(ctx context.Context, e execer, userID int64, method models.SignInMethod, providerUID string) error {
	query, args, err := db.builder.
		Insert("sign_in_methods").
		Columns("user_id", "method", "provider_uid").
		Values(userID, string(method), providerUID).
		Suffix("ON CONFLICT (user_id, method) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = e.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, db.classify(err))
	}
	return nil
}

// setPasswordHash yields [ErrAccountNotFound] when no row matches userID.
func (db *DB) setPasswordHash(ctx context.Context, e execer, userID int64, passwordHash string) error {
	query, args, err := db.builder.
		Update(models.Account{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, db.classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) methodsByUserID(ctx context.Context, userID int64) ([]models.SignInMethod, error) {
	query, args, err := r.builder.
		Select("method").
		From("sign_in_methods").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("method").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanMethods(ctx, query, args)
}

func (r *accountRepository) scanMethods(ctx context.Context, query string, args []any) ([]models.SignInMethod, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	methods := make([]models.SignInMethod, 0, 2)
	for rows.Next() {
		var m string
		if err = rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		methods = append(methods, models.SignInMethod(m))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return methods, nil
}
