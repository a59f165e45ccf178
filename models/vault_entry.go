// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

import "time"

// VaultEntry is the server-side representation of a single vault record.
// The server stores it verbatim and never inspects the payload: EncryptedData
// and Nonce are produced and consumed exclusively by the client core.
type VaultEntry struct {
	// ID is the unique identifier of the entry (UUID v4).
	ID string `json:"id"`

	// UserID is the owning account. Not exposed via JSON; scoping is
	// enforced by the persistence layer.
	UserID string `json:"-"`

	// CategoryID optionally assigns the entry to a category. Nil means
	// uncategorized.
	CategoryID *string `json:"category_id"`

	// EncryptedData is the AES-256-GCM ciphertext of the JSON-serialized
	// record, base64 (standard encoding). Opaque to the server.
	EncryptedData string `json:"encrypted_data"`

	// Nonce is the 12-byte GCM nonce for this ciphertext, hex-encoded.
	// Fresh for every encryption; never reused with the same key.
	Nonce string `json:"nonce"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultEntry model.
func (v VaultEntry) TableName() string {
	return "vault_entries"
}

// CipherRecord is the opaque output of one encryption call: ciphertext plus
// the nonce that was drawn for it. The pair is the persistence compatibility
// contract (ciphertext base64 standard encoding, nonce hex) and must stay
// decryptable across reimplementations.
type CipherRecord struct {
	EncryptedData string `json:"encrypted_data"`
	Nonce         string `json:"nonce"`
}

// CipherRecord returns the entry's ciphertext/nonce pair for decryption.
func (v VaultEntry) CipherRecord() CipherRecord {
	return CipherRecord{EncryptedData: v.EncryptedData, Nonce: v.Nonce}
}
