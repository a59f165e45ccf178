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

	"github.com/pivault/pivault/models"
)

func newTestEntryRepo(t *testing.T) (*vaultEntryRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	wrapped, mock, db := newTestDB(t)
	repo := &vaultEntryRepository{
		db:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func entryRows(entries ...models.VaultEntry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "category_id", "encrypted_data", "nonce",
		"created_at", "updated_at",
	})
	for _, e := range entries {
		rows.AddRow(e.ID, e.UserID, e.CategoryID, e.EncryptedData, e.Nonce, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestCreateEntry_Success(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	entry := models.VaultEntry{
		ID:            "e-1",
		UserID:        "u-1",
		EncryptedData: "b64cipher",
		Nonce:         "aabbccddeeff001122334455",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectExec("INSERT INTO vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != entry.ID {
		t.Errorf("expected ID=%s, got %s", entry.ID, created.ID)
	}
}

func TestCreateEntry_NotSaved(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.CreateEntry(context.Background(), models.VaultEntry{ID: "e-1", UserID: "u-1"})
	if !errors.Is(err, ErrEntryNotSaved) {
		t.Fatalf("expected ErrEntryNotSaved, got %v", err)
	}
}

func TestCreateEntries_Transactional(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	entries := []models.VaultEntry{
		{ID: "e-1", UserID: "u-1", EncryptedData: "c1", Nonce: "n1"},
		{ID: "e-2", UserID: "u-1", EncryptedData: "c2", Nonce: "n2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vault_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO vault_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreateEntries(context.Background(), entries...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestCreateEntries_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	entries := []models.VaultEntry{
		{ID: "e-1", UserID: "u-1"},
		{ID: "e-2", UserID: "u-1"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vault_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO vault_entries").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateEntries(context.Background(), entries...)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestGetEntriesByUser_ScansAllRows(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	categoryID := "c-1"
	entries := []models.VaultEntry{
		{ID: "e-1", UserID: "u-1", CategoryID: &categoryID, EncryptedData: "c1", Nonce: "n1", CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: "e-2", UserID: "u-1", EncryptedData: "c2", Nonce: "n2", CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	mock.ExpectQuery("SELECT .+ FROM vault_entries").
		WithArgs("u-1").
		WillReturnRows(entryRows(entries...))

	got, err := repo.GetEntriesByUser(context.Background(), "u-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].CategoryID == nil || *got[0].CategoryID != categoryID {
		t.Errorf("expected category %s on first entry, got %v", categoryID, got[0].CategoryID)
	}
	if got[1].CategoryID != nil {
		t.Errorf("expected nil category on second entry, got %v", *got[1].CategoryID)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM vault_entries").
		WithArgs("missing", "u-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetEntry(context.Background(), "missing", "u-1")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestGetEntry_ScopedToOwner(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	entry := models.VaultEntry{
		ID: "e-1", UserID: "u-1", EncryptedData: "cipher", Nonce: "nonce",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	// both id and user_id must appear as query arguments
	mock.ExpectQuery("SELECT .+ FROM vault_entries").
		WithArgs("e-1", "u-1").
		WillReturnRows(entryRows(entry))

	got, err := repo.GetEntry(context.Background(), "e-1", "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EncryptedData != entry.EncryptedData {
		t.Errorf("expected ciphertext %s, got %s", entry.EncryptedData, got.EncryptedData)
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateEntry(context.Background(), models.VaultEntry{ID: "missing", UserID: "u-1"})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteEntry_Success(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vault_entries").
		WithArgs("e-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEntry(context.Background(), "e-1", "u-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEntry(context.Background(), "missing", "u-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
