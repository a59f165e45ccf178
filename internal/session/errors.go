// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package session

import "errors"

var (
	// ErrNotUnlocked is returned by Key when the session holds no vault key.
	// Calling code that reaches the cipher without an unlocked session has a
	// contract bug; this error is meant to fail loudly, not to reach the user.
	ErrNotUnlocked = errors.New("session is not unlocked")

	// ErrNotAuthenticated is returned by Unlock when there is no identity to
	// unlock (the session never logged in, or was logged out).
	ErrNotAuthenticated = errors.New("session is not authenticated")

	// ErrInvalidCredentials is returned when the supplied secret is absent or
	// unusable. A wrong-but-present secret is NOT detected here: it derives a
	// key that fails to decrypt existing records, which is the only signal a
	// zero-knowledge client can have.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
