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

// vaultEntryRepository is the SQL-backed implementation of
// [VaultEntryRepository]. Ciphertext and nonce move through it as opaque
// strings; the repository enforces only ownership scoping.
type vaultEntryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVaultEntryRepository constructs a [VaultEntryRepository] backed by the
// provided database connection and logger.
func NewVaultEntryRepository(db *DB, logger *logger.Logger) VaultEntryRepository {
	logger.Debug().Msg("creating vault entry repository")
	return &vaultEntryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEntry persists a single vault entry.
func (r *vaultEntryRepository) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertEntryQuery(r.db.builder, entry)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.CreateEntry").Msg("error building insert query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.CreateEntry").Msg("error inserting vault entry")
		return models.VaultEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Error().Str("func", "*vaultEntryRepository.CreateEntry").Msg("provided vault entry was not saved")
		return models.VaultEntry{}, ErrEntryNotSaved
	}

	return entry, nil
}

// CreateEntries persists a batch of entries inside one transaction. Used by
// vault import, where a partial write would corrupt the restored vault.
func (r *vaultEntryRepository) CreateEntries(ctx context.Context, entries ...models.VaultEntry) error {
	log := logger.FromContext(ctx)

	if len(entries) == 0 {
		return nil
	}

	// begin transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.CreateEntries").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// for each single entry
	for idx, entry := range entries {
		query, args, err := buildInsertEntryQuery(r.db.builder, entry)
		if err != nil {
			log.Err(err).Str("func", "*vaultEntryRepository.CreateEntries").Int("iteration", idx).Msg("error building insert query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "*vaultEntryRepository.CreateEntries").Int("iteration", idx).Msg("error executing insert for vault entry")
			return execErr
		}

		if affected, _ := result.RowsAffected(); affected == 0 {
			log.Error().Str("func", "*vaultEntryRepository.CreateEntries").Int("iteration", idx).Msg("vault entry was not saved")
			return ErrEntryNotSaved
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// GetEntriesByUser lists a user's entries, newest first. A non-nil categoryID
// narrows the result to one category.
func (r *vaultEntryRepository) GetEntriesByUser(ctx context.Context, userID string, categoryID *string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntriesQuery(r.db.builder, userID, categoryID)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.GetEntriesByUser").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.GetEntriesByUser").Str("user_id", userID).Msg("error querying vault entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.VaultEntry
	for rows.Next() {
		var entry models.VaultEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.CategoryID, &entry.EncryptedData,
			&entry.Nonce, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			log.Err(err).Str("func", "*vaultEntryRepository.GetEntriesByUser").Msg("error scanning vault entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// GetEntry retrieves one entry scoped to its owner.
// Returns [ErrEntryNotFound] when no entry matches (id, user_id).
func (r *vaultEntryRepository) GetEntry(ctx context.Context, entryID string, userID string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntryQuery(r.db.builder, entryID, userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.GetEntry").Msg("error building select query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.VaultEntry
	row := r.db.QueryRowContext(ctx, query, args...)

	scanErr := row.Scan(
		&entry.ID, &entry.UserID, &entry.CategoryID, &entry.EncryptedData,
		&entry.Nonce, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).Str("func", "*vaultEntryRepository.GetEntry").Str("user_id", userID).Msg("error scanning vault entry row")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return entry, nil
}

// UpdateEntry replaces the ciphertext, nonce, and category of an owned entry
// and returns the refreshed record.
// Returns [ErrEntryNotFound] when no entry matches (id, user_id).
func (r *vaultEntryRepository) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(r.db.builder, entry, nowUTC())
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.UpdateEntry").Msg("error building update query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.UpdateEntry").Msg("error updating vault entry")
		return models.VaultEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.VaultEntry{}, ErrEntryNotFound
	}

	return r.GetEntry(ctx, entry.ID, entry.UserID)
}

// DeleteEntry removes an owned entry.
// Returns [ErrEntryNotFound] when no entry matches (id, user_id).
func (r *vaultEntryRepository) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(r.db.builder, entryID, userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.DeleteEntry").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.DeleteEntry").Msg("error deleting vault entry")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// DeleteAllEntries removes every entry of one user. Used by vault import in
// replace mode.
func (r *vaultEntryRepository) DeleteAllEntries(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAllEntriesQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.DeleteAllEntries").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.DeleteAllEntries").Str("user_id", userID).Msg("error deleting vault entries")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
