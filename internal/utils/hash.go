// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Used server-side to store login password hashes. This is the
// authentication credential only; it plays no part in the vault key, which
// never reaches the server in any form.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// VerifyHash reports whether data hashes to expectedHex under hashKey, in
// constant time.
func VerifyHash(data, hashKey, expectedHex string) bool {
	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false
	}
	return hmac.Equal(hashString([]byte(data), hashKey), expected)
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
