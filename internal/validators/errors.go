// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail          = errors.New("invalid email address")
	ErrLoginPasswordTooShort = errors.New("login password is too short")

	ErrInvalidCategoryName    = errors.New("invalid category name")
	ErrInvalidLanguage        = errors.New("invalid language")
	ErrInvalidAutoLockMinutes = errors.New("auto lock minutes out of range")
)
