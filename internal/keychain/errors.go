// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package keychain

import "errors"

var (
	// ErrMalformedSalt is returned by DeriveKey when the salt is not the
	// expected 64 hex characters (32 bytes). Fatal to the calling flow;
	// surfaced to the user as "cannot process credentials".
	ErrMalformedSalt = errors.New("malformed master key salt")

	// ErrDecryptionFailure is the single error returned by DecryptRecord for
	// every failure mode: bad encoding, truncated blob, wrong key, tampered
	// ciphertext, invalid plaintext. Collapsing the modes keeps the cipher
	// from acting as an oracle about which step failed.
	ErrDecryptionFailure = errors.New("decryption failed")
)
