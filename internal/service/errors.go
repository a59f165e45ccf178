// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"errors"

	"github.com/pivault/pivault/internal/validators"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers every login failure involving the
	// credentials themselves: unknown email, wrong password, bad TOTP code.
	// Deliberately generic so responses never confirm account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTooManyLoginAttempts is returned when the (email, ip) pair exceeded
	// the failed-login budget inside the lockout window.
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")

	// ErrTOTPCodeRequired is returned at login when the account has a second
	// factor enabled and the request carried no code.
	ErrTOTPCodeRequired = errors.New("totp code required")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTOTPNotConfigured = errors.New("totp is not configured")
	ErrTOTPCodeInvalid   = errors.New("invalid totp code")

	// The validation rules behind these live in internal/validators; the
	// service re-exports the sentinels so the transport keeps a single
	// error-to-status table.
	ErrInvalidLanguage        = validators.ErrInvalidLanguage
	ErrInvalidAutoLockMinutes = validators.ErrInvalidAutoLockMinutes
	ErrInvalidCategoryName    = validators.ErrInvalidCategoryName

	// ErrInvalidExportBundle is returned by vault import when the bundle
	// version is unknown or an entry misses its ciphertext or nonce.
	ErrInvalidExportBundle = errors.New("invalid export bundle")

	// Client-side sentinels wrapping transport failures, so the TUI can
	// distinguish "server said no" from local crypto/session problems.
	ErrRegisterOnServer = errors.New("register on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrServerOperation  = errors.New("server operation failed")
)
