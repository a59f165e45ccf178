// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"fmt"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/validators"
	"github.com/pivault/pivault/models"
)

// settingsService is the concrete implementation of SettingsService.
type settingsService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	logger         *logger.Logger
}

// NewSettingsService constructs a SettingsService on top of the user
// repository.
func NewSettingsService(repos *store.Repositories, logger *logger.Logger) SettingsService {
	return &settingsService{
		userRepository: repos.UserRepository,
		validator:      validators.NewAccountValidator(),
		logger:         logger,
	}
}

// UpdateSettings validates and applies the non-nil fields of the patch and
// returns the refreshed account record.
//
// Returns ErrInvalidAutoLockMinutes when the requested window is outside
// [1, 120] minutes, or ErrInvalidLanguage for an empty language tag.
func (s *settingsService) UpdateSettings(ctx context.Context, userID string, settings models.SettingsUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, settings); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.UpdateSettings(ctx, userID, settings)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("settings update failed")
		return models.User{}, fmt.Errorf("settings update failed: %w", err)
	}

	return user, nil
}
