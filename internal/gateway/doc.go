// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway is the client's single entry point to the identity
// directory and the document store.
//
// [Gateway] has two interchangeable variants. The live variant talks to the
// backend through [adapter.ServerAdapter]; the simulated variant answers with
// canned data after a short artificial delay and touches no network. [New]
// picks one when the client is composed and callers only ever see the
// interface.
//
// Failures are reported through the typed errors in errors.go so screens can
// tell an authentication rejection from a storage failure with [errors.As].
package gateway
