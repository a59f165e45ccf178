// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for users, categories, vault entries, and
// audit events.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUID (v7), falling back to v4 when the
// clock source is unavailable.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
