// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package keychain

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/argon2"
)

// saltSize is the master key salt length in bytes (64 hex characters on the
// wire). Matches the salt issued by the original PiVault server, so existing
// accounts keep deriving the same key.
const saltSize = 32

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. Raspberry Pi vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChain constructs a [KeyChain] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChain() KeyChain {
	return &keyChain{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateSalt implements [KeyChain]. It reads 32 random bytes from the OS
// CSPRNG and returns them hex-encoded. Returns an error if the random read
// fails.
func (k *keyChain) GenerateSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// DeriveKey implements [KeyChain]. It decodes the hex salt and derives a
// 256-bit vault key from the master secret via Argon2id with the parameters
// stored in the receiver. The result exists only in client memory and is
// never transmitted to the server.
func (k *keyChain) DeriveKey(secret string, saltHex string) ([]byte, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) != saltSize {
		return nil, ErrMalformedSalt
	}

	return argon2.IDKey(
		[]byte(secret),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	), nil
}
