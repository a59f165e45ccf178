// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
)

// Services aggregates every server-side service behind one constructor.
type Services struct {
	AuthService     AuthService
	TOTPService     TOTPService
	SettingsService SettingsService
	CategoryService CategoryService
	VaultService    VaultService
}

// NewServices wires all services to the repositories and config.
func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(repos, keychain.NewKeyChain(), cfg.App, cfg.Security, logger),
		TOTPService:     NewTOTPService(repos, logger),
		SettingsService: NewSettingsService(repos, logger),
		CategoryService: NewCategoryService(repos, logger),
		VaultService:    NewVaultService(repos, logger),
	}
}
