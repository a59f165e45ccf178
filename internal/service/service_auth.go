// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/internal/validators"
	"github.com/pivault/pivault/models"
)

// defaultCategoryName is created for every fresh account so the first entry
// has somewhere to live.
const defaultCategoryName = "General"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification with brute-force
// protection, and JWT token lifecycle. Login passwords are stored as
// HMAC-SHA256 keyed hashes; the per-account master key salt is issued here
// once and never changes.
type authService struct {
	userRepository     store.UserRepository
	categoryRepository store.CategoryRepository
	attemptRepository  store.LoginAttemptRepository
	auditRepository    store.AuditRepository

	keychain  keychain.KeyChain
	validator validators.Validator
	uuid      *utils.UUIDGenerator

	// hashKey is the HMAC secret used when hashing login passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// maxLoginAttempts and attemptWindow bound failed logins per (email, ip).
	maxLoginAttempts int
	attemptWindow    time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from the application config.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(repos *store.Repositories, kc keychain.KeyChain, cfg config.App, security config.Security, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     repos.UserRepository,
		categoryRepository: repos.CategoryRepository,
		attemptRepository:  repos.LoginAttemptRepository,
		auditRepository:    repos.AuditRepository,
		keychain:           kc,
		validator:          validators.NewAccountValidator(),
		uuid:               utils.NewUUIDGenerator(),
		hashKey:            cfg.PasswordHashKey,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		maxLoginAttempts:   security.MaxLoginAttempts,
		attemptWindow:      security.LoginAttemptWindow,
		logger:             logger,
	}
}

// RegisterUser creates a new account.
//
// It validates the email and login password, hashes the password with the
// configured HMAC key, issues the account's immutable master key salt, and
// creates the default category. The salt is generated server-side exactly
// once; the server never learns the key derived from it.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if the email is malformed or the password is
//     shorter than eight characters.
//   - A wrapped storage error if persistence fails (e.g. email already
//     taken, see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	// Which rule failed stays out of the response: registration rejections
	// are deliberately generic.
	if err := a.validator.Validate(ctx, user); err != nil {
		log.Error().Str("email", user.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	salt, err := a.keychain.GenerateSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	now := time.Now().UTC()
	newUser := models.User{
		ID:              a.uuid.Generate(),
		Email:           strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash:    utils.HashString(user.Password, a.hashKey),
		MasterKeySalt:   salt,
		Language:        "en",
		AutoLockMinutes: 15,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, newUser)
	if err != nil {
		log.Err(err).Str("email", newUser.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if _, err := a.categoryRepository.CreateCategory(ctx, models.Category{
		ID:        a.uuid.Generate(),
		UserID:    registeredUser.ID,
		Name:      defaultCategoryName,
		Icon:      "folder",
		CreatedAt: now,
	}); err != nil {
		// The account exists; a missing default category is an inconvenience,
		// not a failed registration.
		log.Err(err).Str("user_id", registeredUser.ID).Msg("default category creation failed")
	}

	a.audit(ctx, registeredUser.ID, models.AuditRegister, true)

	return registeredUser, nil
}

// Login authenticates an existing account.
//
// The flow, in order: brute-force budget check for (email, ip), account
// lookup, constant-time password comparison, and TOTP verification when the
// account has a second factor enabled. Every failed attempt is recorded; a
// successful login clears the attempt counter.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrTooManyLoginAttempts when the attempt budget is exhausted.
//   - ErrTOTPCodeRequired when a second factor is enabled and no code came.
//   - ErrInvalidCredentials for unknown email, wrong password, or bad code.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)
	meta := utils.GetClientMetaFromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))

	count, err := a.attemptRepository.CountRecentAttempts(ctx, email, meta.IPAddress, time.Now().UTC().Add(-a.attemptWindow))
	if err != nil {
		log.Err(err).Msg("login attempt count failed")
		return models.User{}, fmt.Errorf("login attempt count failed: %w", err)
	}
	if count >= a.maxLoginAttempts {
		a.audit(ctx, "", models.AuditLoginBlocked, false)
		return models.User{}, ErrTooManyLoginAttempts
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.recordFailure(ctx, email, meta.IPAddress)
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyHash(user.Password, a.hashKey, foundUser.PasswordHash) {
		log.Warn().Str("user_id", foundUser.ID).Msg("wrong password")
		a.recordFailure(ctx, email, meta.IPAddress)
		return models.User{}, ErrInvalidCredentials
	}

	if foundUser.TOTPEnabled {
		if user.TOTPCode == "" {
			return models.User{}, ErrTOTPCodeRequired
		}
		if !validateTOTPCode(user.TOTPCode, foundUser.TOTPSecret) {
			log.Warn().Str("user_id", foundUser.ID).Msg("wrong totp code")
			a.recordFailure(ctx, email, meta.IPAddress)
			return models.User{}, ErrInvalidCredentials
		}
	}

	if err := a.attemptRepository.ClearAttempts(ctx, email, meta.IPAddress); err != nil {
		log.Err(err).Msg("clearing login attempts failed")
	}
	a.audit(ctx, foundUser.ID, models.AuditLogin, true)

	return foundUser, nil
}

// Logout records the logout in the audit log. Tokens are stateless; nothing
// is revoked server-side.
func (a *authService) Logout(ctx context.Context, userID string) error {
	a.audit(ctx, userID, models.AuditLogout, true)
	return nil
}

// GetUser returns the account record, including the master key salt the
// client needs for key derivation.
func (a *authService) GetUser(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// recordFailure stores one failed attempt and audits it. Best-effort: a
// failure to record never masks the login error.
func (a *authService) recordFailure(ctx context.Context, email string, ip string) {
	log := logger.FromContext(ctx)

	if err := a.attemptRepository.RecordAttempt(ctx, models.LoginAttempt{
		ID:        a.uuid.Generate(),
		Email:     email,
		IPAddress: ip,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Err(err).Msg("recording login attempt failed")
	}

	a.audit(ctx, "", models.AuditLoginFailed, false)
}

func (a *authService) audit(ctx context.Context, userID string, action string, success bool) {
	log := logger.FromContext(ctx)
	meta := utils.GetClientMetaFromContext(ctx)

	if err := a.auditRepository.RecordEvent(ctx, models.AuditEvent{
		ID:        a.uuid.Generate(),
		UserID:    userID,
		Action:    action,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Success:   success,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Err(err).Str("action", action).Msg("audit event write failed")
	}
}
