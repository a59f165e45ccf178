// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

// totpIssuer is the issuer label shown by authenticator apps.
const totpIssuer = "PiVault"

// totpService is the concrete implementation of TOTPService. Secrets are
// persisted disabled at setup time and flipped to enabled only after the
// user proves possession with a valid code.
type totpService struct {
	userRepository  store.UserRepository
	auditRepository store.AuditRepository
	uuid            *utils.UUIDGenerator
	logger          *logger.Logger
}

// NewTOTPService constructs a TOTPService on top of the user repository.
func NewTOTPService(repos *store.Repositories, logger *logger.Logger) TOTPService {
	return &totpService{
		userRepository:  repos.UserRepository,
		auditRepository: repos.AuditRepository,
		uuid:            utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// Setup generates a fresh TOTP secret for the account and stores it in a
// disabled state. The returned provisioning URL encodes issuer, account
// email, and secret for authenticator app enrollment.
func (s *totpService) Setup(ctx context.Context, userID string) (models.TOTPSetupResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return models.TOTPSetupResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("totp secret generation failed")
		return models.TOTPSetupResponse{}, fmt.Errorf("totp secret generation failed: %w", err)
	}

	if err := s.userRepository.UpdateTOTP(ctx, userID, key.Secret(), false); err != nil {
		log.Err(err).Str("user_id", userID).Msg("storing totp secret failed")
		return models.TOTPSetupResponse{}, fmt.Errorf("storing totp secret failed: %w", err)
	}

	return models.TOTPSetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
	}, nil
}

// Verify confirms the pending secret with a code and enables the second
// factor.
//
// Returns ErrTOTPNotConfigured when no setup preceded the call, or
// ErrTOTPCodeInvalid when the code does not match.
func (s *totpService) Verify(ctx context.Context, userID string, code string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if user.TOTPSecret == "" {
		return ErrTOTPNotConfigured
	}
	if !validateTOTPCode(code, user.TOTPSecret) {
		return ErrTOTPCodeInvalid
	}

	if err := s.userRepository.UpdateTOTP(ctx, userID, user.TOTPSecret, true); err != nil {
		log.Err(err).Str("user_id", userID).Msg("enabling totp failed")
		return fmt.Errorf("enabling totp failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditTOTPEnabled)
	return nil
}

// Disable turns the second factor off after a final code check. The stored
// secret is discarded.
func (s *totpService) Disable(ctx context.Context, userID string, code string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return ErrTOTPNotConfigured
	}
	if !validateTOTPCode(code, user.TOTPSecret) {
		return ErrTOTPCodeInvalid
	}

	if err := s.userRepository.UpdateTOTP(ctx, userID, "", false); err != nil {
		log.Err(err).Str("user_id", userID).Msg("disabling totp failed")
		return fmt.Errorf("disabling totp failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditTOTPDisabled)
	return nil
}

func (s *totpService) audit(ctx context.Context, userID string, action string) {
	log := logger.FromContext(ctx)
	meta := utils.GetClientMetaFromContext(ctx)

	if err := s.auditRepository.RecordEvent(ctx, models.AuditEvent{
		ID:        s.uuid.Generate(),
		UserID:    userID,
		Action:    action,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Success:   true,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Err(err).Str("action", action).Msg("audit event write failed")
	}
}

// validateTOTPCode checks a code against the secret with one period of clock
// skew tolerance in both directions.
func validateTOTPCode(code string, secret string) bool {
	valid, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}
