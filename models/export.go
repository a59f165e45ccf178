// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

// ExportVersion identifies the export bundle layout. Bump on any breaking
// change to the bundle shape.
const ExportVersion = "1.0"

// ExportBundle is the portable backup format of a vault. The entries stay in
// their encrypted form (the server cannot decrypt them, and neither can the
// export consumer without the master secret), so a bundle is safe to store
// anywhere. Categories travel in plaintext like they do in the database.
type ExportBundle struct {
	Entries    []VaultEntry `json:"entries"`
	Categories []Category   `json:"categories"`
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
}
