// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pivault/pivault/internal/adapter"
	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/models"
)

type clientVaultService struct {
	adapter  adapter.ServerAdapter
	keychain keychain.KeyChain
	session  *session.Session
	logger   *logger.Logger
}

// NewClientVaultService wires the plaintext vault service over the server
// adapter, the cryptographic core, and the session that holds the vault key.
func NewClientVaultService(serverAdapter adapter.ServerAdapter, kc keychain.KeyChain, sess *session.Session, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{adapter: serverAdapter, keychain: kc, session: sess, logger: logger}
}

func (v *clientVaultService) CreateEntry(ctx context.Context, rec models.Record) (models.DecryptedEntry, error) {
	entry, err := v.sealRecord(rec)
	if err != nil {
		return models.DecryptedEntry{}, err
	}

	created, err := v.adapter.CreateEntry(ctx, entry)
	if err != nil {
		return models.DecryptedEntry{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	return decryptedEntry(created, rec), nil
}

func (v *clientVaultService) GetEntries(ctx context.Context, categoryID *string) ([]models.DecryptedEntry, error) {
	log := v.logger.With().Str("func", "*clientVaultService.GetEntries").Logger()

	key, err := v.session.Key()
	if err != nil {
		return nil, err
	}

	entries, err := v.adapter.GetEntries(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	decrypted := make([]models.DecryptedEntry, 0, len(entries))
	for _, entry := range entries {
		rec, err := v.keychain.DecryptRecord(entry.CipherRecord(), key)
		if err != nil {
			if errors.Is(err, keychain.ErrDecryptionFailure) {
				log.Warn().Str("entry_id", entry.ID).Msg("skipping undecryptable entry")
				continue
			}
			return nil, fmt.Errorf("decrypt entry: %w", err)
		}
		if entry.CategoryID != nil {
			rec.CategoryID = *entry.CategoryID
		}
		decrypted = append(decrypted, decryptedEntry(entry, rec))
	}

	return decrypted, nil
}

func (v *clientVaultService) GetEntry(ctx context.Context, entryID string) (models.DecryptedEntry, error) {
	key, err := v.session.Key()
	if err != nil {
		return models.DecryptedEntry{}, err
	}

	entry, err := v.adapter.GetEntry(ctx, entryID)
	if err != nil {
		return models.DecryptedEntry{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	rec, err := v.keychain.DecryptRecord(entry.CipherRecord(), key)
	if err != nil {
		return models.DecryptedEntry{}, fmt.Errorf("decrypt entry: %w", err)
	}
	if entry.CategoryID != nil {
		rec.CategoryID = *entry.CategoryID
	}

	return decryptedEntry(entry, rec), nil
}

func (v *clientVaultService) UpdateEntry(ctx context.Context, entryID string, rec models.Record) (models.DecryptedEntry, error) {
	entry, err := v.sealRecord(rec)
	if err != nil {
		return models.DecryptedEntry{}, err
	}
	entry.ID = entryID

	updated, err := v.adapter.UpdateEntry(ctx, entry)
	if err != nil {
		return models.DecryptedEntry{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}

	return decryptedEntry(updated, rec), nil
}

func (v *clientVaultService) DeleteEntry(ctx context.Context, entryID string) error {
	if err := v.adapter.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("%w: %w", ErrServerOperation, err)
	}
	return nil
}

func (v *clientVaultService) Export(ctx context.Context) (models.ExportBundle, error) {
	bundle, err := v.adapter.Export(ctx)
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}
	return bundle, nil
}

func (v *clientVaultService) Import(ctx context.Context, bundle models.ExportBundle, replace bool) (int, error) {
	count, err := v.adapter.Import(ctx, bundle, replace)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrServerOperation, err)
	}
	return count, nil
}

// sealRecord encrypts rec under the current session key and shapes the wire
// entry. The category assignment travels outside the ciphertext so the server
// can filter without decrypting.
func (v *clientVaultService) sealRecord(rec models.Record) (models.VaultEntry, error) {
	key, err := v.session.Key()
	if err != nil {
		return models.VaultEntry{}, err
	}

	cipher, err := v.keychain.EncryptRecord(rec, key)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("encrypt record: %w", err)
	}

	entry := models.VaultEntry{
		EncryptedData: cipher.EncryptedData,
		Nonce:         cipher.Nonce,
	}
	if rec.CategoryID != "" {
		categoryID := rec.CategoryID
		entry.CategoryID = &categoryID
	}

	return entry, nil
}

func decryptedEntry(entry models.VaultEntry, rec models.Record) models.DecryptedEntry {
	return models.DecryptedEntry{
		ID:        entry.ID,
		Record:    rec,
		CreatedAt: formatEntryTime(entry.CreatedAt),
		UpdatedAt: formatEntryTime(entry.UpdatedAt),
	}
}

func formatEntryTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
