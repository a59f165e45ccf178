// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

import "time"

// Audit action names recorded by the server. The set is closed so log
// consumers can filter on exact values.
const (
	AuditRegister     = "register"
	AuditLogin        = "login"
	AuditLoginFailed  = "login_failed"
	AuditLoginBlocked = "login_blocked"
	AuditLogout       = "logout"
	AuditTOTPEnabled  = "totp_enabled"
	AuditTOTPDisabled = "totp_disabled"
	AuditEntryCreated = "entry_created"
	AuditEntryUpdated = "entry_updated"
	AuditEntryDeleted = "entry_deleted"
	AuditVaultImport  = "vault_import"
)

// AuditEvent is one row of the security audit log. Events never contain
// secrets or ciphertext, only who did what, from where, and whether it
// succeeded.
type AuditEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the AuditEvent model.
func (a AuditEvent) TableName() string {
	return "audit_log"
}

// LoginAttempt is one failed login recorded for brute-force protection.
// Attempts are keyed by (email, ip) and expire after the lockout window.
type LoginAttempt struct {
	ID        string
	Email     string
	IPAddress string
	Timestamp time.Time
}

// TableName returns the name of the database table
// associated with the LoginAttempt model.
func (l LoginAttempt) TableName() string {
	return "login_attempts"
}
