// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the client, built on Bubble Tea.
//
// A single root model owns every screen: sign-in and sign-up, the home
// screen with the live item collection, the resident registration form and
// the reports screen. Each backend call runs as one command whose result
// comes back as a message, and each screen tracks the call with an explicit
// request state.
package tui
