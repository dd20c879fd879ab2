// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The transport error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	var mapped error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgUnsupportedFormat:
			mapped = ErrUnsupportedFormat
		default:
			mapped = ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		mapped = ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgNothingToExport:
			mapped = ErrNothingToExport
		case app.MsgReportNotFound:
			mapped = store.ErrReportNotFound
		}

	case errors.Is(err, adapter.ErrServiceUnavailable):
		mapped = store.ErrTemporarilyUnavailable
	}

	if mapped == nil {
		return err
	}
	return fmt.Errorf("%w: %w", mapped, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
