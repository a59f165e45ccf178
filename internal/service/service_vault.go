// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

// vaultService is the concrete implementation of VaultService. It never
// inspects ciphertext: EncryptedData and Nonce are validated only for
// presence and stored verbatim.
type vaultService struct {
	entryRepository    store.VaultEntryRepository
	categoryRepository store.CategoryRepository
	auditRepository    store.AuditRepository
	uuid               *utils.UUIDGenerator
	logger             *logger.Logger
}

// NewVaultService constructs a VaultService on top of the vault entry
// repository.
func NewVaultService(repos *store.Repositories, logger *logger.Logger) VaultService {
	return &vaultService{
		entryRepository:    repos.VaultEntryRepository,
		categoryRepository: repos.CategoryRepository,
		auditRepository:    repos.AuditRepository,
		uuid:               utils.NewUUIDGenerator(),
		logger:             logger,
	}
}

// CreateEntry persists a new encrypted entry for the user.
// Returns ErrInvalidDataProvided when ciphertext or nonce is missing.
func (s *vaultService) CreateEntry(ctx context.Context, userID string, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if entry.EncryptedData == "" || entry.Nonce == "" {
		return models.VaultEntry{}, ErrInvalidDataProvided
	}

	now := time.Now().UTC()
	created, err := s.entryRepository.CreateEntry(ctx, models.VaultEntry{
		ID:            s.uuid.Generate(),
		UserID:        userID,
		CategoryID:    entry.CategoryID,
		EncryptedData: entry.EncryptedData,
		Nonce:         entry.Nonce,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("vault entry creation failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry creation failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditEntryCreated)
	return created, nil
}

// GetEntries lists the user's entries, optionally narrowed to one category.
func (s *vaultService) GetEntries(ctx context.Context, userID string, categoryID *string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.entryRepository.GetEntriesByUser(ctx, userID, categoryID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("vault entry list failed")
		return nil, fmt.Errorf("vault entry list failed: %w", err)
	}

	return entries, nil
}

// GetEntry returns one owned entry.
func (s *vaultService) GetEntry(ctx context.Context, userID string, entryID string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	entry, err := s.entryRepository.GetEntry(ctx, entryID, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("entry_id", entryID).Msg("vault entry lookup failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry lookup failed: %w", err)
	}

	return entry, nil
}

// UpdateEntry replaces ciphertext, nonce, and category of an owned entry.
// Returns ErrInvalidDataProvided when ciphertext or nonce is missing.
func (s *vaultService) UpdateEntry(ctx context.Context, userID string, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if entry.EncryptedData == "" || entry.Nonce == "" {
		return models.VaultEntry{}, ErrInvalidDataProvided
	}

	entry.UserID = userID
	updated, err := s.entryRepository.UpdateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("entry_id", entry.ID).Msg("vault entry update failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry update failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditEntryUpdated)
	return updated, nil
}

// DeleteEntry removes one owned entry.
func (s *vaultService) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	log := logger.FromContext(ctx)

	if err := s.entryRepository.DeleteEntry(ctx, entryID, userID); err != nil {
		log.Err(err).Str("user_id", userID).Str("entry_id", entryID).Msg("vault entry deletion failed")
		return fmt.Errorf("vault entry deletion failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditEntryDeleted)
	return nil
}

// Export packs the user's encrypted entries into a portable bundle. The
// entries stay ciphertext; a bundle is safe to store anywhere.
func (s *vaultService) Export(ctx context.Context, userID string) (models.ExportBundle, error) {
	log := logger.FromContext(ctx)

	entries, err := s.entryRepository.GetEntriesByUser(ctx, userID, nil)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("vault export failed")
		return models.ExportBundle{}, fmt.Errorf("vault export failed: %w", err)
	}

	categories, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("vault export failed")
		return models.ExportBundle{}, fmt.Errorf("vault export failed: %w", err)
	}

	return models.ExportBundle{
		Entries:    entries,
		Categories: categories,
		Version:    models.ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Import restores entries from an export bundle. New identifiers are issued
// for every imported entry; in replace mode the existing vault is dropped
// first. Category assignments are not carried over, since category IDs of
// the source account have no meaning here.
//
// Returns the number of imported entries, or ErrInvalidExportBundle when the
// version is unknown or an entry misses its ciphertext or nonce.
func (s *vaultService) Import(ctx context.Context, userID string, bundle models.ExportBundle, replace bool) (int, error) {
	log := logger.FromContext(ctx)

	if bundle.Version != models.ExportVersion {
		return 0, ErrInvalidExportBundle
	}

	now := time.Now().UTC()
	imported := make([]models.VaultEntry, 0, len(bundle.Entries))
	for _, entry := range bundle.Entries {
		if entry.EncryptedData == "" || entry.Nonce == "" {
			return 0, ErrInvalidExportBundle
		}
		imported = append(imported, models.VaultEntry{
			ID:            s.uuid.Generate(),
			UserID:        userID,
			EncryptedData: entry.EncryptedData,
			Nonce:         entry.Nonce,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if replace {
		if err := s.entryRepository.DeleteAllEntries(ctx, userID); err != nil {
			log.Err(err).Str("user_id", userID).Msg("clearing vault before import failed")
			return 0, fmt.Errorf("clearing vault before import failed: %w", err)
		}
	}

	if err := s.entryRepository.CreateEntries(ctx, imported...); err != nil {
		log.Err(err).Str("user_id", userID).Msg("vault import failed")
		return 0, fmt.Errorf("vault import failed: %w", err)
	}

	s.audit(ctx, userID, models.AuditVaultImport)
	return len(imported), nil
}

func (s *vaultService) audit(ctx context.Context, userID string, action string) {
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
