// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/pivault/pivault/models"
)

// AuthService handles account registration, login, and token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	Logout(ctx context.Context, userID string) error
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
}

// TOTPService manages the optional second factor of an account.
type TOTPService interface {
	Setup(ctx context.Context, userID string) (models.TOTPSetupResponse, error)
	Verify(ctx context.Context, userID string, code string) error
	Disable(ctx context.Context, userID string, code string) error
}

// SettingsService updates account preferences.
type SettingsService interface {
	UpdateSettings(ctx context.Context, userID string, settings models.SettingsUpdate) (models.User, error)
}

// CategoryService manages vault entry categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID string, category models.Category) (models.Category, error)
	GetCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, userID string, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// VaultService manages encrypted vault entries. Ciphertext stays opaque
// through every operation.
type VaultService interface {
	CreateEntry(ctx context.Context, userID string, entry models.VaultEntry) (models.VaultEntry, error)
	GetEntries(ctx context.Context, userID string, categoryID *string) ([]models.VaultEntry, error)
	GetEntry(ctx context.Context, userID string, entryID string) (models.VaultEntry, error)
	UpdateEntry(ctx context.Context, userID string, entry models.VaultEntry) (models.VaultEntry, error)
	DeleteEntry(ctx context.Context, userID string, entryID string) error
	Export(ctx context.Context, userID string) (models.ExportBundle, error)
	Import(ctx context.Context, userID string, bundle models.ExportBundle, replace bool) (int, error)
}
