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

const passwordResetsTable = "password_resets"

type passwordResetRepository struct {
	*DB
	logger *logger.Logger
}

func NewPasswordResetRepository(db *DB, logger *logger.Logger) PasswordResetRepository {
	logger.Debug().Msg("creating password reset repository")
	return &passwordResetRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveReset stores reset. reset.Token must already be hashed.
func (r *passwordResetRepository) SaveReset(ctx context.Context, reset models.PasswordReset) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert(passwordResetsTable).
		Columns("token", "user_id", "expires_at", "used").
		Values(reset.Token, reset.UserID, reset.ExpiresAt.UTC(), false).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.SaveReset").Int64("user_id", reset.UserID).Msg("error saving reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return nil
}

// ResetPassword consumes the token and applies the new password inside one
// transaction, so a failure leaves both the token and the account untouched.
// The expiry check happens here rather than in SQL so it behaves the same on
// both dialects.
func (r *passwordResetRepository) ResetPassword(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, r.classify(err))
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := r.builder.
		Select("user_id", "expires_at", "used").
		From(passwordResetsTable).
		Where(sq.Eq{"token": tokenHash}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var reset models.PasswordReset
	err = tx.QueryRowContext(ctx, query, args...).Scan(&reset.UserID, &reset.ExpiresAt, &reset.Used)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrResetTokenInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("error reading reset token")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, r.classify(err))
	}

	if reset.Used || !now.Before(reset.ExpiresAt) {
		return 0, ErrResetTokenInvalid
	}

	query, args, err = r.builder.
		Update(passwordResetsTable).
		Set("used", true).
		Where(sq.Eq{"token": tokenHash, "used": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("error marking reset token used")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// consumed concurrently
		return 0, ErrResetTokenInvalid
	}

	if err = r.setPasswordHash(ctx, tx, reset.UserID, passwordHash); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Int64("user_id", reset.UserID).Msg("error updating password")
		return 0, err
	}
	if err = r.insertSignInMethod(ctx, tx, reset.UserID, models.SignInMethodPassword, ""); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Int64("user_id", reset.UserID).Msg("error binding password method")
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return reset.UserID, nil
}
