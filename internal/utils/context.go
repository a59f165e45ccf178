// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the account UUID in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the account UUID from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true : value is found and has the correct string type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// clientMetaCtxKey is the key used to store request origin metadata in the
// context for audit logging.
var clientMetaCtxKey = contextKey("clientMeta")

// ClientMeta carries the request origin attributes recorded in audit events.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// WithClientMeta returns a child context carrying the request origin
// metadata.
func WithClientMeta(ctx context.Context, meta ClientMeta) context.Context {
	return context.WithValue(ctx, clientMetaCtxKey, meta)
}

// GetClientMetaFromContext retrieves the request origin metadata stored by
// [WithClientMeta]. A zero value is returned when none is present.
func GetClientMetaFromContext(ctx context.Context) ClientMeta {
	meta, _ := ctx.Value(clientMetaCtxKey).(ClientMeta)
	return meta
}
