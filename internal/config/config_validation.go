// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks invariants shared by both binaries.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidTimeoutConfigs
	}
	if cfg.App.TokenDuration < 0 || cfg.App.ResetTokenTTL < 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Workers.ItemsPollInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.FederatedSignKey != "" && cfg.App.FederatedSignKey == cfg.App.TokenSignKey {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.ExportDir == "" {
		return ErrInvalidAppConfigs
	}

	// the simulated gateway never talks to the backend
	if cfg.App.UseMockData {
		return nil
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if !strings.HasPrefix(cfg.Adapter.HTTPAddress, "http://") &&
		!strings.HasPrefix(cfg.Adapter.HTTPAddress, "https://") &&
		!strings.Contains(cfg.Adapter.HTTPAddress, ":") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ItemsPollInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
