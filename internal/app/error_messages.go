// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// RefugiApp server handlers and the client services that read their
// responses.
//
// All Msg* constants are the plain-text bodies the server writes for
// rejected requests. The client matches on them to recover the service
// error, so the wording is part of the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgWrongEmailPassword is returned when the email is unknown or the
	// password does not match.
	MsgWrongEmailPassword = "wrong email or password"

	// MsgProviderMismatch is returned with 409 when a password operation
	// targets an email bound only to a federated provider.
	MsgProviderMismatch = "provider mismatch"

	// MsgEmailAlreadyExists is returned with 409 on sign-up of a registered
	// email.
	MsgEmailAlreadyExists = "email already exists"

	MsgUnsupportedProvider = "unsupported sign-in provider"
	MsgFederatedDisabled   = "federated sign-in is disabled"
	MsgInvalidAssertion    = "invalid provider assertion"

	// MsgResetTokenInvalid is returned when a reset token is unknown, used
	// or expired.
	MsgResetTokenInvalid = "password reset token is invalid"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires the
	// authenticated account but none is in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	MsgReportNotFound    = "report not found"
	MsgUnsupportedFormat = "unsupported report format"

	// MsgNothingToExport is returned with 404 when a report has no rows to
	// render.
	MsgNothingToExport = "report has no rows"

	// MsgStorageUnavailable is returned with 503 for transient database
	// failures. The client may retry later.
	MsgStorageUnavailable = "storage temporarily unavailable"
)
