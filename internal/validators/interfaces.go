// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the input rules of the RefugiApp API.
//
// Core concepts:
//   - Validator: generic interface to validate request bodies and documents.
//     Supports optional field-level scoping for targeted validation.
//
// Usage patterns:
//  1. Inject a Validator into the service wrapper that guards a use case.
//  2. Call Validate with the value and, optionally, the field names to check.
//  3. Match the returned error with errors.Is against the sentinels in
//     errors.go.
package validators

import "context"

// Validator validates arbitrary input values and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
