// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"

	"github.com/pivault/pivault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for account lifecycle and
// session control. Implementations talk to the server through the adapter and
// hand the master password to the local session for key derivation; the
// password itself never leaves the process except inside the register/login
// request bodies.
type ClientAuthService interface {
	// Register creates a new account on the server and opens an unlocked
	// session: the server issues the master key salt, the session derives the
	// vault key from the master password and that salt. Returns an error if
	// the server call or key derivation fails.
	Register(ctx context.Context, email, password string) error

	// Login authenticates against the server and opens an unlocked session.
	// totpCode may be empty when the account has no second factor. Returns an
	// error wrapping [ErrLoginOnServer] if the server rejects the credentials
	// or throttles the attempt.
	Login(ctx context.Context, email, password, totpCode string) error

	// Unlock re-derives the vault key from the master password for a locked
	// session. A wrong password is not detectable here; it yields a key whose
	// decrypt attempts fail.
	Unlock(password string) error

	// Lock discards the in-memory vault key but keeps the session identity,
	// so Unlock can restore it without a server round-trip.
	Lock()

	// Logout ends the session on both sides: tells the server, drops the
	// bearer token, and wipes all local session material.
	Logout(ctx context.Context) error

	// CurrentUser fetches the authenticated user's profile from the server.
	CurrentUser(ctx context.Context) (models.User, error)

	// UpdateSettings pushes changed preferences to the server. A changed
	// auto-lock window is applied to the running session immediately; it
	// does not wait for the next login.
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.User, error)
}

// ClientVaultService defines the client-side contract for working with vault
// entries in plaintext. All encryption and decryption happens inside the
// implementation; the adapter beneath it only ever sees ciphertext.
type ClientVaultService interface {
	// CreateEntry encrypts rec with the session key and uploads it. The
	// category assignment is taken from rec.CategoryID (empty means
	// uncategorized). Returns the stored entry's identifiers.
	CreateEntry(ctx context.Context, rec models.Record) (models.DecryptedEntry, error)

	// GetEntries downloads the user's entries (optionally filtered by
	// category) and decrypts each one. Entries whose ciphertext fails to
	// decrypt are skipped and logged by ID only; plaintext and ciphertext
	// never appear in logs.
	GetEntries(ctx context.Context, categoryID *string) ([]models.DecryptedEntry, error)

	// GetEntry downloads and decrypts a single entry.
	GetEntry(ctx context.Context, entryID string) (models.DecryptedEntry, error)

	// UpdateEntry re-encrypts rec under a fresh nonce and replaces the stored
	// ciphertext of the entry identified by entryID.
	UpdateEntry(ctx context.Context, entryID string, rec models.Record) (models.DecryptedEntry, error)

	// DeleteEntry removes the entry from the server.
	DeleteEntry(ctx context.Context, entryID string) error

	// Export downloads the vault as an encrypted bundle suitable for backup.
	Export(ctx context.Context) (models.ExportBundle, error)

	// Import uploads a previously exported bundle. With replace set, the
	// server-side vault is cleared first. Returns the imported entry count.
	Import(ctx context.Context, bundle models.ExportBundle, replace bool) (int, error)
}
