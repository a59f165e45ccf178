// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

// SettingsUpdate is the body of PUT /api/settings. Nil fields are left
// unchanged.
type SettingsUpdate struct {
	Language        *string `json:"language,omitempty"`
	AutoLockMinutes *int    `json:"auto_lock_minutes,omitempty"`
}

// TOTPSetupResponse carries the provisioning material for enrolling a
// second factor. The secret is confirmed (and only then persisted as
// enabled) by a follow-up verify call.
type TOTPSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TOTPVerify is the body of the TOTP verify and disable endpoints.
type TOTPVerify struct {
	Code string `json:"code"`
}

// StrengthRequest is the body of POST /api/password/strength. The password
// is scored in memory and never logged or stored.
type StrengthRequest struct {
	Password string `json:"password"`
}
