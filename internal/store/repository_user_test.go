// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	wrapped := &DB{
		DB:      db,
		driver:  "pgx",
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  l,
	}
	return wrapped, mock, db
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	wrapped, mock, db := newTestDB(t)
	repo := &userRepository{
		db:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{
			"id", "email", "password_hash", "master_key_salt",
			"totp_secret", "totp_enabled", "language", "auto_lock_minutes",
			"created_at", "updated_at",
		}).
		AddRow(
			user.ID, user.Email, user.PasswordHash, user.MasterKeySalt,
			user.TOTPSecret, user.TOTPEnabled, user.Language, user.AutoLockMinutes,
			user.CreatedAt, user.UpdatedAt,
		)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		ID:              "u-1",
		Email:           "john@example.com",
		PasswordHash:    "hash",
		MasterKeySalt:   "salt",
		Language:        "en",
		AutoLockMinutes: 15,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != user.ID {
		t.Errorf("expected ID=%s, got %s", user.ID, created.ID)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{ID: "u-1", Email: "john@example.com"}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		ID:              "u-1",
		Email:           "john@example.com",
		PasswordHash:    "hash",
		MasterKeySalt:   "salt",
		Language:        "en",
		AutoLockMinutes: 15,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(user.Email).
		WillReturnRows(userRow(user))

	found, err := repo.FindUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected ID=%s, got %s", user.ID, found.ID)
	}
	if found.MasterKeySalt != user.MasterKeySalt {
		t.Errorf("expected salt %s, got %s", user.MasterKeySalt, found.MasterKeySalt)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateSettings_NoRowsAffected(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	lang := "de"

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateSettings(ctx, "missing", models.SettingsUpdate{Language: &lang})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateSettings_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	lang := "de"
	updated := models.User{
		ID:              "u-1",
		Email:           "john@example.com",
		Language:        "de",
		AutoLockMinutes: 15,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("u-1").
		WillReturnRows(userRow(updated))

	result, err := repo.UpdateSettings(ctx, "u-1", models.SettingsUpdate{Language: &lang})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Language != "de" {
		t.Errorf("expected language de, got %s", result.Language)
	}
}

func TestUpdateTOTP_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTOTP(ctx, "u-1", "base32secret", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
