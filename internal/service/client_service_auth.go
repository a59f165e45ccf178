// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pivault/pivault/internal/adapter"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	session *session.Session
	logger  *logger.Logger
}

// NewClientAuthService wires the account/session service over the server
// adapter and the local session.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, sess *session.Session, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, session: sess, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, email, password string) error {
	log := a.logger.With().Str("func", "*clientAuthService.Register").Logger()

	created, err := a.adapter.Register(ctx, models.User{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	if err = a.session.Login(password, created.MasterKeySalt, autoLockDuration(created.AutoLockMinutes)); err != nil {
		return fmt.Errorf("open session after register: %w", err)
	}

	log.Info().Str("user_id", created.ID).Msg("registered and unlocked")
	return nil
}

func (a *clientAuthService) Login(ctx context.Context, email, password, totpCode string) error {
	log := a.logger.With().Str("func", "*clientAuthService.Login").Logger()

	found, err := a.adapter.Login(ctx, models.User{Email: email, Password: password, TOTPCode: totpCode})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	if err = a.session.Login(password, found.MasterKeySalt, autoLockDuration(found.AutoLockMinutes)); err != nil {
		return fmt.Errorf("open session after login: %w", err)
	}

	log.Info().Str("user_id", found.ID).Msg("logged in and unlocked")
	return nil
}

func (a *clientAuthService) Unlock(password string) error {
	return a.session.Unlock(password)
}

func (a *clientAuthService) Lock() {
	a.session.Lock()
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	log := a.logger.With().Str("func", "*clientAuthService.Logout").Logger()

	// Local material goes first: even if the server is unreachable the key
	// must not outlive the user's intent to leave.
	a.session.Logout()

	if err := a.adapter.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("server logout failed")
		return fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	return nil
}

func (a *clientAuthService) CurrentUser(ctx context.Context) (models.User, error) {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}
	return user, nil
}

func (a *clientAuthService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.User, error) {
	log := a.logger.With().Str("func", "*clientAuthService.UpdateSettings").Logger()

	user, err := a.adapter.UpdateSettings(ctx, update)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	if update.AutoLockMinutes != nil {
		a.session.SetAutoLockDuration(autoLockDuration(user.AutoLockMinutes))
	}

	log.Info().Msg("settings updated")
	return user, nil
}

func autoLockDuration(minutes int) time.Duration {
	if minutes <= 0 {
		return session.DefaultAutoLock
	}
	return time.Duration(minutes) * time.Minute
}
