// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package keychain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pivault/pivault/models"
)

// EncryptRecord implements [KeyChain]. It marshals rec to JSON, draws a fresh
// 12-byte nonce from the OS CSPRNG, and seals the plaintext with AES-256-GCM.
// Ciphertext and nonce are returned separately, ciphertext Base64 (standard
// encoding) and nonce hex, matching the layout the server persists.
//
// GCM is an AEAD mode: the authentication tag travels inside the ciphertext,
// so any bit-flip on the stored blob is detected at decryption time instead
// of silently yielding garbage.
func (k *keyChain) EncryptRecord(rec models.Record, key []byte) (models.CipherRecord, error) {
	plaintext, err := json.Marshal(rec)
	if err != nil {
		return models.CipherRecord{}, fmt.Errorf("marshal record: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.CipherRecord{}, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return models.CipherRecord{}, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.CipherRecord{}, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return models.CipherRecord{
		EncryptedData: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:         hex.EncodeToString(nonce),
	}, nil
}

// DecryptRecord implements [KeyChain]. It decodes the ciphertext/nonce pair,
// opens the GCM seal with key, and unmarshals the plaintext JSON. Every
// failure mode maps to the single ErrDecryptionFailure: a wrong key, a
// truncated blob, and a flipped ciphertext bit are indistinguishable to the
// caller. An error here almost always means the user unlocked with the wrong
// master secret, producing a wrong key.
func (k *keyChain) DecryptRecord(cr models.CipherRecord, key []byte) (models.Record, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(cr.EncryptedData)
	if err != nil {
		return models.Record{}, ErrDecryptionFailure
	}
	nonce, err := hex.DecodeString(cr.Nonce)
	if err != nil {
		return models.Record{}, ErrDecryptionFailure
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.Record{}, ErrDecryptionFailure
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return models.Record{}, ErrDecryptionFailure
	}
	if len(nonce) != gcm.NonceSize() {
		return models.Record{}, ErrDecryptionFailure
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return models.Record{}, ErrDecryptionFailure
	}

	var rec models.Record
	if err := json.Unmarshal(plaintext, &rec); err != nil {
		return models.Record{}, ErrDecryptionFailure
	}

	return rec, nil
}
