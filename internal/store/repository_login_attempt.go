// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

// loginAttemptRepository is the SQL-backed implementation of
// [LoginAttemptRepository].
type loginAttemptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLoginAttemptRepository constructs a [LoginAttemptRepository] backed by
// the provided database connection and logger.
func NewLoginAttemptRepository(db *DB, logger *logger.Logger) LoginAttemptRepository {
	logger.Debug().Msg("creating login attempt repository")
	return &loginAttemptRepository{
		db:     db,
		logger: logger,
	}
}

// RecordAttempt stores one failed login.
func (r *loginAttemptRepository) RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertLoginAttemptQuery(r.db.builder, attempt)
	if err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.RecordAttempt").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.RecordAttempt").Msg("error inserting login attempt")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// CountRecentAttempts counts failed logins for (email, ip) at or after the
// since timestamp.
func (r *loginAttemptRepository) CountRecentAttempts(ctx context.Context, email string, ip string, since time.Time) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountLoginAttemptsQuery(r.db.builder, email, ip, since)
	if err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.CountRecentAttempts").Msg("error building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.CountRecentAttempts").Msg("error scanning attempt count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// ClearAttempts drops all recorded attempts for (email, ip). Called after a
// successful login to reset the counter.
func (r *loginAttemptRepository) ClearAttempts(ctx context.Context, email string, ip string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearLoginAttemptsQuery(r.db.builder, email, ip)
	if err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.ClearAttempts").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.ClearAttempts").Msg("error clearing login attempts")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
