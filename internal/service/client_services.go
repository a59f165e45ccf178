// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"github.com/pivault/pivault/internal/adapter"
	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/session"
)

// ClientServices bundles the client-side service layer for injection into the
// terminal UI.
type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
}

// NewClientServices wires the client services over a shared server adapter,
// cryptographic core, and session.
func NewClientServices(serverAdapter adapter.ServerAdapter, kc keychain.KeyChain, sess *session.Session, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, sess, logger),
		VaultService: NewClientVaultService(serverAdapter, kc, sess, logger),
	}
}
