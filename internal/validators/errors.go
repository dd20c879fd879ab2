package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrEmptyResetToken   = errors.New("reset token is required")
	ErrEmptyAssertion    = errors.New("provider assertion is required")
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidSex        = errors.New("invalid sex value")
	ErrInvalidBirthDate  = errors.New("invalid birth date")
	ErrEmptyIdentifier   = errors.New("identifier is required")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
