// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client binaries. It is populated by merging environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, gateway selection and export settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings of the server.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and the inbound request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the backend address used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of a session token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// FederatedSignKey verifies assertions issued by the federated identity
	// provider. Federated sign-in is disabled when empty.
	// Env: APP_FEDERATED_SIGN_KEY
	FederatedSignKey string `env:"FEDERATED_SIGN_KEY"`

	// FederatedIssuer is the expected "iss" claim of federated assertions.
	// Env: APP_FEDERATED_ISSUER
	FederatedIssuer string `env:"FEDERATED_ISSUER"`

	// ResetTokenTTL is how long a password reset token stays usable.
	// Env: APP_RESET_TOKEN_TTL
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// UseMockData selects the simulated service gateway on the client.
	// Env: APP_USE_MOCK_DATA
	UseMockData bool `env:"USE_MOCK_DATA"`

	// ExportDir is where the client saves exported reports.
	// Env: APP_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`

	// CopyExportPath copies the path of every saved export to the clipboard.
	// Env: APP_COPY_EXPORT_PATH
	CopyExportPath bool `env:"COPY_EXPORT_PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health listener.
	// The listener is not started when empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver as well: a postgres:// URL opens pgx, a
	// "file:" DSN or a path ending in ".db" opens sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the client-side view of the backend.
type Adapter struct {
	// HTTPAddress is the base URL of the backend (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound call made by the client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ItemsPollInterval is how often the live item subscription polls.
	// Env: WORKERS_ITEMS_POLL_INTERVAL
	ItemsPollInterval time.Duration `env:"ITEMS_POLL_INTERVAL"`
}

// Defaults applied to fields that no source has set.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultAdapterAddress    = "http://localhost:8080"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultTokenDuration     = 24 * time.Hour
	DefaultTokenIssuer       = "refugiapp"
	DefaultResetTokenTTL     = time.Hour
	DefaultItemsPollInterval = 5 * time.Second
	DefaultExportDir         = "."
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (a later source overrides non-zero fields of an earlier one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = DefaultAdapterAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.ResetTokenTTL == 0 {
		cfg.App.ResetTokenTTL = DefaultResetTokenTTL
	}
	if cfg.App.ExportDir == "" {
		cfg.App.ExportDir = DefaultExportDir
	}
	if cfg.Workers.ItemsPollInterval == 0 {
		cfg.Workers.ItemsPollInterval = DefaultItemsPollInterval
	}
}
