// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

import "time"

// User represents an account entity used for authentication and settings.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUID v4, issued at
	// registration).
	ID string `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// Password carries the login password only on inbound register/login
	// requests. It is the authentication credential, not the vault secret,
	// and is never persisted or echoed back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the keyed hash of the login password stored server-side.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// MasterKeySalt is the per-account salt for client-side key derivation
	// (64 hex characters, 32 bytes). Issued once at registration and immutable
	// for the life of the account. Non-secret, but integrity-sensitive: a
	// different salt derives a different vault key.
	MasterKeySalt string `json:"master_key_salt,omitempty"`

	// TOTPSecret is the base32 secret for the optional second factor.
	// Never exposed via JSON.
	TOTPSecret string `json:"-"`

	// TOTPEnabled reports whether the account requires a TOTP code at login.
	TOTPEnabled bool `json:"totp_enabled"`

	// TOTPCode carries the one-time code on inbound login requests when the
	// second factor is enabled.
	TOTPCode string `json:"totp_code,omitempty"`

	// Language is the UI language preference ("en" by default).
	Language string `json:"language"`

	// AutoLockMinutes is the inactivity window after which the client
	// discards the in-memory vault key. Between 1 and 120 minutes.
	AutoLockMinutes int `json:"auto_lock_minutes"`

	// CreatedAt / UpdatedAt are account lifecycle timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
