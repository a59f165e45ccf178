// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pivault/pivault/models"
)

// Field name constants for field-level scoping of account validation.
const (
	// FieldEmail targets the account email address.
	FieldEmail = "email"

	// FieldLoginPassword targets the login password. The master password is
	// never validated here; it never reaches the server side at all.
	FieldLoginPassword = "login_password"

	// FieldCategoryName targets the display name of a vault category.
	FieldCategoryName = "category_name"

	// FieldLanguage targets the UI language tag of the account settings.
	FieldLanguage = "language"

	// FieldAutoLockMinutes targets the auto-lock window of the account
	// settings.
	FieldAutoLockMinutes = "auto_lock_minutes"
)

// Bounds enforced by the account validator. MinAutoLockMinutes and
// MaxAutoLockMinutes are exported because the client caps its settings form
// with the same range.
const (
	MinAutoLockMinutes = 1
	MaxAutoLockMinutes = 120

	minLoginPasswordLength = 8
	maxEmailLength         = 254
	maxCategoryNameLength  = 50
	maxLanguageLength      = 8
)

// AccountValidator implements [Validator] for the account-level domain
// models: User, Category, and SettingsUpdate. Vault entries carry no
// validatable plaintext, so they have no rules here.
type AccountValidator struct{}

func NewAccountValidator() *AccountValidator {
	return &AccountValidator{}
}

// Validate implements [Validator].
func (v *AccountValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch data := value.(type) {
	case models.User:
		return v.validateUser(ctx, data, fields...)
	case models.Category:
		return v.validateCategory(ctx, data, fields...)
	case models.SettingsUpdate:
		return v.validateSettingsUpdate(ctx, data, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldLoginPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			email := strings.TrimSpace(user.Email)
			at := strings.Index(email, "@")
			if at <= 0 || at == len(email)-1 || len(email) > maxEmailLength {
				return ErrInvalidEmail
			}
		case FieldLoginPassword:
			if len(user.Password) < minLoginPasswordLength {
				return ErrLoginPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateCategory(_ context.Context, category models.Category, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCategoryName}
	}

	for _, f := range fields {
		switch f {
		case FieldCategoryName:
			name := strings.TrimSpace(category.Name)
			if name == "" || utf8.RuneCountInString(name) > maxCategoryNameLength {
				return ErrInvalidCategoryName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSettingsUpdate checks only the fields present in the patch; a nil
// field means "leave unchanged" and is always acceptable.
func (v *AccountValidator) validateSettingsUpdate(_ context.Context, settings models.SettingsUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLanguage, FieldAutoLockMinutes}
	}

	for _, f := range fields {
		switch f {
		case FieldLanguage:
			if settings.Language != nil {
				if *settings.Language == "" || len(*settings.Language) > maxLanguageLength {
					return ErrInvalidLanguage
				}
			}
		case FieldAutoLockMinutes:
			if settings.AutoLockMinutes != nil {
				if *settings.AutoLockMinutes < MinAutoLockMinutes || *settings.AutoLockMinutes > MaxAutoLockMinutes {
					return ErrInvalidAutoLockMinutes
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
