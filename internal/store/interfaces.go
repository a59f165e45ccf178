// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/pivault/pivault/models"
)

// UserRepository persists user accounts and their settings.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateSettings(ctx context.Context, userID string, settings models.SettingsUpdate) (models.User, error)
	UpdateTOTP(ctx context.Context, userID string, secret string, enabled bool) error
}

// CategoryRepository persists vault entry categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategoriesByUser(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
}

// VaultEntryRepository persists encrypted vault entries. The repository never
// sees plaintext: EncryptedData and Nonce are opaque strings produced by the
// client.
type VaultEntryRepository interface {
	CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	CreateEntries(ctx context.Context, entries ...models.VaultEntry) error
	GetEntriesByUser(ctx context.Context, userID string, categoryID *string) ([]models.VaultEntry, error)
	GetEntry(ctx context.Context, entryID string, userID string) (models.VaultEntry, error)
	UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	DeleteEntry(ctx context.Context, entryID string, userID string) error
	DeleteAllEntries(ctx context.Context, userID string) error
}

// AuditRepository records security-relevant events. Write-mostly; reads are
// limited to the most recent events of one account.
type AuditRepository interface {
	RecordEvent(ctx context.Context, event models.AuditEvent) error
	GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.AuditEvent, error)
}

// LoginAttemptRepository tracks failed logins for brute-force protection.
type LoginAttemptRepository interface {
	RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error
	CountRecentAttempts(ctx context.Context, email string, ip string, since time.Time) (int, error)
	ClearAttempts(ctx context.Context, email string, ip string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations are driver-specific.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
