package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveReset verifies the insert.
func TestSaveReset(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPasswordResetRepository(db, logger.Nop())

	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec("INSERT INTO password_resets \\(token,user_id,expires_at,used\\)").
		WithArgs("digest", int64(2), expires, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveReset(context.Background(), models.PasswordReset{Token: "digest", UserID: 2, ExpiresAt: expires})
	require.NoError(t, err)
}

// TestResetPassword_Success verifies that a valid token is marked used and
// the password applied in the same transaction.
func TestResetPassword_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPasswordResetRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, expires_at, used FROM password_resets WHERE token = \\$1").
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(8, now.Add(time.Hour), false))
	mock.ExpectExec("UPDATE password_resets SET used = \\$1 WHERE token = \\$2 AND used = \\$3").
		WithArgs(true, "digest", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET password_hash = \\$1 WHERE user_id = \\$2").
		WithArgs("new-hash", int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sign_in_methods .* ON CONFLICT \\(user_id, method\\) DO NOTHING").
		WithArgs(int64(8), "password", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	userID, err := repo.ResetPassword(context.Background(), "digest", now, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, int64(8), userID)
}

// TestResetPassword_InvalidToken covers unknown, used and expired tokens.
func TestResetPassword_InvalidToken(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		rows *sqlmock.Rows
	}{
		{"unknown", sqlmock.NewRows([]string{"user_id", "expires_at", "used"})},
		{"used", sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(1, now.Add(time.Hour), true)},
		{"expired", sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(1, now.Add(-time.Second), false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewPasswordResetRepository(db, logger.Nop())

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT user_id, expires_at, used FROM password_resets").WillReturnRows(tt.rows)
			mock.ExpectRollback()

			_, err := repo.ResetPassword(context.Background(), "digest", now, "new-hash")
			assert.ErrorIs(t, err, ErrResetTokenInvalid)
		})
	}
}

// TestResetPassword_ConcurrentUse verifies that losing the update race is
// reported as an invalid token.
func TestResetPassword_ConcurrentUse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPasswordResetRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, expires_at, used FROM password_resets").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(8, now.Add(time.Hour), false))
	mock.ExpectExec("UPDATE password_resets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ResetPassword(context.Background(), "digest", now, "new-hash")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

// TestResetPassword_RollsBackOnBindFailure verifies that a failing method
// insert leaves the token unused and the password unchanged.
func TestResetPassword_RollsBackOnBindFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPasswordResetRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, expires_at, used FROM password_resets").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(8, now.Add(time.Hour), false))
	mock.ExpectExec("UPDATE password_resets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sign_in_methods").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.ResetPassword(context.Background(), "digest", now, "new-hash")
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

// TestResetPassword_AccountGone verifies the missing-account case.
func TestResetPassword_AccountGone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPasswordResetRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, expires_at, used FROM password_resets").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "used"}).AddRow(5, now.Add(time.Hour), false))
	mock.ExpectExec("UPDATE password_resets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ResetPassword(context.Background(), "digest", now, "new-hash")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
