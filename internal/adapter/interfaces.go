// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the RefugiApp client
// and its backend.
//
// The primary abstraction is [ServerAdapter], which decouples the gateway and
// the client services from HTTP. The package ships a REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/refugiapp/refugiapp/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the RefugiApp backend. It owns the
// provider session: the bearer token set by a successful sign-in or sign-up
// and attached to every authenticated request.
type ServerAdapter interface {
	// SetToken stores the bearer token for subsequent authenticated requests.
	// An empty token ends the session.
	SetToken(token string)

	// Token returns the current bearer token or an empty string.
	Token() string

	// SignInMethods lists the sign-in methods bound to email. Unknown emails
	// yield an empty slice.
	SignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error)

	// SignUp creates a password account and starts a session.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.Identity, error)

	// SignIn runs the password grant and starts a session.
	SignIn(ctx context.Context, req models.SignInRequest) (models.Identity, error)

	// FederatedSignIn exchanges a provider assertion for a session.
	FederatedSignIn(ctx context.Context, req models.FederatedSignInRequest) (models.Identity, error)

	// RequestPasswordReset asks the backend to send a reset email.
	RequestPasswordReset(ctx context.Context, email string) error

	// CreateResident stores the document and returns the assigned id.
	CreateResident(ctx context.Context, resident models.Resident) (string, error)

	// ListResidents reads a snapshot of the resident collection.
	ListResidents(ctx context.Context) ([]models.Resident, error)

	// ListItems reads the generic items collection.
	ListItems(ctx context.Context) ([]models.Item, error)

	// ListReports returns the report descriptors without rows.
	ListReports(ctx context.Context) ([]models.Report, error)

	// ReportRows fetches the rows of a single report.
	ReportRows(ctx context.Context, id string) ([]models.Record, error)

	// DownloadReport fetches a server-rendered report. format may be empty.
	DownloadReport(ctx context.Context, id, format string) (models.RenderedReport, error)

	// Version returns the backend version text.
	Version(ctx context.Context) (string, error)
}
