// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package validators holds the input validation rules enforced by the
// service layer.
//
// Validation is expressed through a single generic [Validator] interface so
// services depend on an injectable collaborator instead of scattering field
// checks inline. A call may name specific fields to restrict the check to a
// subset; with no fields named, every rule for the value's type runs.
package validators

import "context"

// Validator validates arbitrary input values. Implementations switch on the
// concrete type of the value and return a sentinel error naming the first
// rule that failed.
type Validator interface {

	// Validate checks the provided value, optionally restricted to the named
	// fields. Unsupported types and unknown field names are errors too: a
	// validator that silently accepts what it does not understand hides bugs.
	Validate(ctx context.Context, value any, fields ...string) error
}
