package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/crypto"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/store"
	"github.com/refugiapp/refugiapp/internal/utils"
	"github.com/refugiapp/refugiapp/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	accounts store.AccountRepository
	resets   store.PasswordResetRepository

	hasher   crypto.PasswordHasher
	tokens   crypto.TokenGenerator
	notifier Notifier

	// tokenSignKey signs session tokens and keys the digest under which
	// reset tokens are stored.
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	// federatedSignKey verifies provider assertions. Empty disables
	// federated sign-in.
	federatedSignKey string
	federatedIssuer  string

	resetTokenTTL time.Duration

	// now is replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService wires the identity directory to its repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	accounts store.AccountRepository,
	resets store.PasswordResetRepository,
	hasher crypto.PasswordHasher,
	tokens crypto.TokenGenerator,
	notifier Notifier,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		accounts:         accounts,
		resets:           resets,
		hasher:           hasher,
		tokens:           tokens,
		notifier:         notifier,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		federatedSignKey: cfg.FederatedSignKey,
		federatedIssuer:  cfg.FederatedIssuer,
		resetTokenTTL:    cfg.ResetTokenTTL,
		now:              time.Now,
		logger:           logger,
	}
}

// SignUp creates a password account.
//
// The bound methods are looked up first so that an email registered through
// a federated provider is reported as [ErrProviderMismatch] rather than a
// plain conflict.
func (a *authService) SignUp(ctx context.Context, req models.SignUpRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid sign-up data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	methods, err := a.accounts.ListSignInMethods(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("sign-in methods lookup failed")
		return models.Account{}, fmt.Errorf("sign-in methods lookup failed: %w", err)
	}
	if models.IsFederatedOnly(methods) {
		return models.Account{}, ErrProviderMismatch
	}
	if len(methods) > 0 {
		return models.Account{}, store.ErrEmailAlreadyExists
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	account, err := a.accounts.CreateAccount(ctx, models.Account{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Methods:      []models.SignInMethod{models.SignInMethodPassword},
	}, "")
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", account.UserID).Msg("account created")
	return account, nil
}

// SignIn runs the password grant.
//
// Returns the account or:
//   - ErrInvalidDataProvided if Email or Password is empty.
//   - ErrProviderMismatch if the account has no password method.
//   - ErrWrongPassword if the email is unknown or the password does not
//     match.
func (a *authService) SignIn(ctx context.Context, req models.SignInRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid sign-in data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Info().Str("email", req.Email).Msg("sign-in for unknown email")
		return models.Account{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("account search by email failed")
		return models.Account{}, fmt.Errorf("account search by email failed: %w", err)
	}

	if !account.HasMethod(models.SignInMethodPassword) || account.PasswordHash == "" {
		return models.Account{}, ErrProviderMismatch
	}

	ok, err := a.hasher.Verify(req.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("stored password hash is unreadable")
		return models.Account{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Info().Int64("user_id", account.UserID).Msg("wrong password")
		return models.Account{}, ErrWrongPassword
	}

	return account, nil
}

// FederatedSignIn verifies the assertion and returns the matching account.
// A first sign-in creates the account; an existing password account gets
// the provider method linked to it.
func (a *authService) FederatedSignIn(ctx context.Context, req models.FederatedSignInRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	provider := req.Provider
	if provider == "" {
		provider = models.SignInMethodGoogle
	}
	if provider != models.SignInMethodGoogle {
		return models.Account{}, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	if a.federatedSignKey == "" {
		return models.Account{}, ErrFederatedDisabled
	}

	claims, err := utils.ParseFederatedAssertion(req.IDToken, a.federatedSignKey, a.federatedIssuer)
	if err != nil {
		log.Err(err).Msg("provider assertion rejected")
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidAssertion, err)
	}

	account, err := a.accounts.FindAccountByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		account, err = a.accounts.CreateAccount(ctx, models.Account{
			Email:       claims.Email,
			DisplayName: claims.Name,
			PhotoURL:    claims.Picture,
			Methods:     []models.SignInMethod{provider},
		}, claims.Subject)
		if err != nil {
			log.Err(err).Str("email", claims.Email).Msg("federated account creation failed")
			return models.Account{}, fmt.Errorf("federated account creation failed: %w", err)
		}
		log.Info().Int64("user_id", account.UserID).Msg("federated account created")
		return account, nil

	case err != nil:
		log.Err(err).Str("email", claims.Email).Msg("account search by email failed")
		return models.Account{}, fmt.Errorf("account search by email failed: %w", err)
	}

	if !account.HasMethod(provider) {
		if err = a.accounts.AddSignInMethod(ctx, account.UserID, provider, claims.Subject); err != nil {
			log.Err(err).Int64("user_id", account.UserID).Msg("linking provider failed")
			return models.Account{}, fmt.Errorf("linking provider failed: %w", err)
		}
		account.Methods = append(account.Methods, provider)
		log.Info().Int64("user_id", account.UserID).Str("provider", string(provider)).Msg("provider linked")
	}

	return account, nil
}

func (a *authService) SignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error) {
	if email == "" {
		return nil, ErrInvalidDataProvided
	}

	methods, err := a.accounts.ListSignInMethods(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("email", email).Msg("sign-in methods lookup failed")
		return nil, fmt.Errorf("sign-in methods lookup failed: %w", err)
	}
	return methods, nil
}

// RequestPasswordReset stores a digest of a fresh token and sends the token
// itself to the notifier. Federated-only accounts may request a reset too;
// confirming it adds the password method.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Info().Str("email", email).Msg("password reset for unknown email ignored")
		return nil
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("account search by email failed")
		return fmt.Errorf("account search by email failed: %w", err)
	}

	token, err := a.tokens.NewToken()
	if err != nil {
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	err = a.resets.SaveReset(ctx, models.PasswordReset{
		Token:     a.resetDigest(token),
		UserID:    account.UserID,
		ExpiresAt: a.now().Add(a.resetTokenTTL),
	})
	if err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("saving reset token failed")
		return fmt.Errorf("saving reset token failed: %w", err)
	}

	if err = a.notifier.NotifyPasswordReset(ctx, account.Email, token); err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("reset notification failed")
		return fmt.Errorf("reset notification failed: %w", err)
	}

	return nil
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirmRequest) error {
	log := logger.FromContext(ctx)

	if req.Token == "" || req.Password == "" {
		return ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	userID, err := a.resets.ResetPassword(ctx, a.resetDigest(req.Token), a.now(), hash)
	if err != nil {
		log.Err(err).Msg("password reset rejected")
		return fmt.Errorf("password reset rejected: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("password reset completed")
	return nil
}

// CreateToken issues a signed session token for account.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a session token. Every validation failure is
// normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// resetDigest is the form under which reset tokens are stored.
func (a *authService) resetDigest(token string) string {
	return utils.HashString(token, a.tokenSignKey)
}
