// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/migrations"
)

// maxExecAttempts bounds the retry loop for write statements that fail with
// a retryable driver error (deadlock, busy database, dropped connection).
const maxExecAttempts = 3

// DB wraps the raw sql.DB connection with the driver name, the matching
// squirrel statement builder, and a driver-specific error classificator.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a database connection for the configured driver.
// Supported drivers are "pgx" (PostgreSQL) and "sqlite3".
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		log.Error().Str("driver", cfg.Driver).Msg("unsupported database driver")
		return nil, ErrUnsupportedDriver
	}
}

// Migrate applies all pending goose migrations for the connected driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// execContext runs a write statement, retrying when the driver reports a
// transient failure. Non-retryable errors are returned after the first
// attempt.
func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var result sql.Result
	var err error

	for attempt := 1; attempt <= maxExecAttempts; attempt++ {
		result, err = db.DB.ExecContext(ctx, query, args...)
		if err == nil {
			return result, nil
		}

		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return result, err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retryable database error")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}

	return result, err
}
