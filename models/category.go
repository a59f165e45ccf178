// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

import "time"

// Category groups vault entries. Category names are not encrypted: they are
// organizational metadata, not secrets.
type Category struct {
	// ID is the unique identifier of the category (UUID v4).
	ID string `json:"id"`

	// UserID is the owning account. Not exposed via JSON.
	UserID string `json:"-"`

	// Name is the display name, 1–50 characters.
	Name string `json:"name"`

	// Icon is a symbolic icon name for the UI ("folder" by default).
	Icon string `json:"icon"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}
