// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package keychain

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

import "github.com/pivault/pivault/models"

// KeyChain is the zero-knowledge cryptographic core of pivault. It knows
// nothing about the network, the database, or sessions; its only job is to
// turn (secret, salt) into a vault key and move records between plaintext
// and ciphertext.
//
// Scheme:
//
//	salt = GenerateSalt()                  once, at registration
//	key  = DeriveKey(secret, salt)         at login/unlock, client memory only
//	rec ⇄ cipher via EncryptRecord / DecryptRecord while the session holds key
type KeyChain interface {
	// GenerateSalt produces the per-account master key salt: 32 random bytes
	// from the OS CSPRNG, hex-encoded (64 characters). The salt is not a
	// secret (the server stores it in the clear), but it is immutable for
	// the life of the account.
	GenerateSalt() (string, error)

	// DeriveKey derives the 256-bit vault key from the master secret and the
	// account salt using Argon2id. Deterministic: the same (secret, salt)
	// pair always reproduces the identical key, so login and unlock converge
	// on the same key without re-encrypting existing records. Returns
	// ErrMalformedSalt if the salt is not 64 hex characters. The secret is
	// not retained after the call returns.
	DeriveKey(secret string, saltHex string) ([]byte, error)

	// EncryptRecord serializes rec to canonical JSON and encrypts it with key
	// using AES-256-GCM under a fresh random nonce. The returned pair is
	// ciphertext (base64, standard encoding) and nonce (hex). A nonce is
	// generated independently for every call and never reused with the same
	// key.
	EncryptRecord(rec models.Record, key []byte) (models.CipherRecord, error)

	// DecryptRecord reverses EncryptRecord. Any integrity or format problem
	// (wrong key, truncated data, corrupted encoding, tampered ciphertext)
	// yields ErrDecryptionFailure with no further detail. A non-nil error is
	// the only failure signal; DecryptRecord never panics on hostile input.
	DecryptRecord(cr models.CipherRecord, key []byte) (models.Record, error)
}
