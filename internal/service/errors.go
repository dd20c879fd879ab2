package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong email or password")

	// ErrProviderMismatch is returned when a password operation targets an
	// account that only signs in through a federated provider.
	ErrProviderMismatch = errors.New("account uses a federated provider")

	ErrUnsupportedProvider = errors.New("unsupported sign-in provider")
	ErrFederatedDisabled   = errors.New("federated sign-in is not configured")
	ErrInvalidAssertion    = errors.New("invalid provider assertion")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidResident       = errors.New("invalid resident")
	ErrNoUserID              = errors.New("no user ID provided")
	ErrUnknownReportKind     = errors.New("unknown report kind")
	ErrNothingToExport       = errors.New("report has no rows")
	ErrUnsupportedFormat     = errors.New("unsupported report format")
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
