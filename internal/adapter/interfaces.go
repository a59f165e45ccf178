// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package adapter provides transport-layer abstractions for communicating with
// the PiVault server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401,
// [ErrTooManyRequests] for a throttled login).
package adapter

import (
	"context"

	"github.com/pivault/pivault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the PiVault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// The server never sees plaintext vault records: every [models.VaultEntry]
// crossing this boundary carries ciphertext and a nonce only. Encryption and
// decryption happen in the client core before and after these calls.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the account credentials.
	// On success it stores the returned bearer token via SetToken and returns
	// the created user, including the server-issued MasterKeySalt needed for
	// key derivation. Returns an error if the request fails or the server
	// responds with a non-2xx status.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. user.Password carries the login password
	// and user.TOTPCode the optional second-factor code. On success it stores
	// the returned bearer token via SetToken and returns the server-side user
	// record (salt, auto-lock preference, TOTP status). Returns [ErrUnauthorized]
	// (wrapped) on bad credentials and [ErrTooManyRequests] when the account
	// is throttled.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Me fetches the authenticated user's own record. Used to refresh the
	// salt and settings after the token is already held. Requires a valid
	// bearer token.
	Me(ctx context.Context) (models.User, error)

	// Logout tells the server to record the end of the session. The adapter
	// drops its stored token regardless of the server's answer.
	Logout(ctx context.Context) error

	// SetupTOTP provisions a second-factor secret for the authenticated user.
	// The factor stays disabled until VerifyTOTP confirms a valid code.
	SetupTOTP(ctx context.Context) (models.TOTPSetupResponse, error)

	// VerifyTOTP confirms the provisioned secret with a current code and
	// enables the second factor.
	VerifyTOTP(ctx context.Context, code string) error

	// DisableTOTP turns the second factor off. The server requires a current
	// valid code to accept the request.
	DisableTOTP(ctx context.Context, code string) error

	// UpdateSettings pushes a partial settings update (nil fields unchanged)
	// and returns the refreshed user record.
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.User, error)

	// CreateCategory creates a category and returns it with its server-issued
	// identifier and timestamps.
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// GetCategories lists the authenticated user's categories.
	GetCategories(ctx context.Context) ([]models.Category, error)

	// UpdateCategory renames a category or changes its icon and returns the
	// refreshed record.
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// DeleteCategory removes a category. Entries assigned to it become
	// uncategorized on the server side.
	DeleteCategory(ctx context.Context, categoryID string) error

	// CreateEntry uploads one encrypted vault entry and returns it with its
	// server-issued identifier and timestamps.
	CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// GetEntries lists the authenticated user's encrypted entries, optionally
	// filtered by category. A nil categoryID means all entries.
	GetEntries(ctx context.Context, categoryID *string) ([]models.VaultEntry, error)

	// GetEntry fetches a single encrypted entry by id. Returns [ErrNotFound]
	// (wrapped) if the entry does not exist or belongs to another user.
	GetEntry(ctx context.Context, entryID string) (models.VaultEntry, error)

	// UpdateEntry replaces the ciphertext, nonce and category assignment of an
	// existing entry and returns the refreshed record.
	UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// DeleteEntry removes a single entry.
	DeleteEntry(ctx context.Context, entryID string) error

	// Export downloads the full vault as an [models.ExportBundle], entries
	// still encrypted.
	Export(ctx context.Context) (models.ExportBundle, error)

	// Import uploads an export bundle. With replace set, the server drops the
	// existing entries first. Returns the number of imported entries.
	Import(ctx context.Context, bundle models.ExportBundle, replace bool) (int, error)

	// ScorePassword asks the server to score a candidate password. The
	// password travels over the request body only and is never persisted.
	ScorePassword(ctx context.Context, password string) (models.StrengthResult, error)
}
