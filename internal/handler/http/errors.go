// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrMissingURLParameter is returned when a route's path parameter
	// (e.g. {id}) is empty.
	ErrMissingURLParameter = errors.New("missing URL parameter")
)
