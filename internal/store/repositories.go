// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"time"

	"github.com/pivault/pivault/internal/logger"
)

// Repositories bundles every repository backed by one database connection.
type Repositories struct {
	UserRepository         UserRepository
	CategoryRepository     CategoryRepository
	VaultEntryRepository   VaultEntryRepository
	AuditRepository        AuditRepository
	LoginAttemptRepository LoginAttemptRepository
}

// NewRepositories constructs all repositories on top of the given connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db, log),
		CategoryRepository:     NewCategoryRepository(db, log),
		VaultEntryRepository:   NewVaultEntryRepository(db, log),
		AuditRepository:        NewAuditRepository(db, log),
		LoginAttemptRepository: NewLoginAttemptRepository(db, log),
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
