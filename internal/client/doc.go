// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It hands the terminal to the UI and releases the background workers the
// client services started (the item poller) once the UI returns.
package client
