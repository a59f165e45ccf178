// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and settings updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it unchanged on success.
//
// Error handling:
//   - unique constraint violation on email → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches.
// Returns [ErrNoUserWasFound] when no account exists for that email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByEmailQuery(r.db.builder, email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanUser(ctx, query, args...)
}

// GetUserByID retrieves the user record by its identifier.
// Returns [ErrNoUserWasFound] when the account does not exist.
func (r *userRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByIDQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUserByID").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanUser(ctx, query, args...)
}

// UpdateSettings applies the non-nil fields of the settings patch and returns
// the refreshed user record.
func (r *userRepository) UpdateSettings(ctx context.Context, userID string, settings models.SettingsUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserSettingsQuery(r.db.builder, userID, settings, nowUTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateSettings").Msg("error building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateSettings").Msg("error updating user settings")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return r.GetUserByID(ctx, userID)
}

// UpdateTOTP stores the second-factor secret and its enabled flag.
func (r *userRepository) UpdateTOTP(ctx context.Context, userID string, secret string, enabled bool) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserTOTPQuery(r.db.builder, userID, secret, enabled, nowUTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateTOTP").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateTOTP").Msg("error updating totp settings")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) scanUser(ctx context.Context, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.MasterKeySalt,
		&user.TOTPSecret, &user.TOTPEnabled, &user.Language, &user.AutoLockMinutes,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.scanUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}
