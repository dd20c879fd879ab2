package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/refugiapp/refugiapp/models"
)

// Field names accepted by [AccountValidator].
const (
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldResetToken = "token"
	FieldAssertion  = "id_token"
)

// MinPasswordLength is the shortest password the identity directory accepts.
const MinPasswordLength = 6

// AccountValidator checks the bodies of the identity endpoints.
type AccountValidator struct{}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validate(fieldsOr(fields, FieldEmail, FieldPassword), value.Email, value.Password, "", "")
	case *models.SignUpRequest:
		return v.Validate(ctx, *value, fields...)

	case models.SignInRequest:
		// only the email shape is checked on sign-in
		return v.validate(fieldsOr(fields, FieldEmail), value.Email, value.Password, "", "")
	case *models.SignInRequest:
		return v.Validate(ctx, *value, fields...)

	case models.FederatedSignInRequest:
		return v.validate(fieldsOr(fields, FieldAssertion), "", "", "", value.IDToken)
	case *models.FederatedSignInRequest:
		return v.Validate(ctx, *value, fields...)

	case models.PasswordResetRequest:
		return v.validate(fieldsOr(fields, FieldEmail), value.Email, "", "", "")
	case *models.PasswordResetRequest:
		return v.Validate(ctx, *value, fields...)

	case models.PasswordResetConfirmRequest:
		return v.validate(fieldsOr(fields, FieldResetToken, FieldPassword), "", value.Password, value.Token, "")
	case *models.PasswordResetConfirmRequest:
		return v.Validate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validate(fields []string, email, password, token, assertion string) error {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(email); err != nil {
				return err
			}
		case FieldPassword:
			if len([]rune(password)) < MinPasswordLength {
				return fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, MinPasswordLength)
			}
		case FieldResetToken:
			if strings.TrimSpace(token) == "" {
				return ErrEmptyResetToken
			}
		case FieldAssertion:
			if strings.TrimSpace(assertion) == "" {
				return ErrEmptyAssertion
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// ValidateEmail accepts a bare address ("ana@example.com"), not a display
// name form.
func ValidateEmail(email string) error {
	if email == "" || strings.TrimSpace(email) != email {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func fieldsOr(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}
