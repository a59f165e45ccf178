// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

// Record is the plaintext form of a vault entry as the user sees it.
// It exists only inside the client: records are serialized to canonical JSON
// and encrypted before leaving the process, and the core never retains a
// Record after an encrypt call returns.
type Record struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// CategoryID mirrors VaultEntry.CategoryID so the client can round-trip
	// the assignment without consulting the server copy.
	CategoryID string `json:"category_id,omitempty"`
}

// DecryptedEntry pairs a plaintext record with the identifiers of the stored
// entry it was decrypted from. Entries whose ciphertext fails to decrypt are
// skipped by the vault service, so a DecryptedEntry always holds a valid
// record; callers never see a half-open "maybe decrypted" value.
type DecryptedEntry struct {
	ID        string
	Record    Record
	CreatedAt string
	UpdatedAt string
}
