// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
)

const (
	testSecret = "correct horse battery staple"
	testWrong  = "incorrect horse battery staple"
)

var testSalt = strings.Repeat("ab", 32)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(keychain.NewKeyChain(), logger.Nop())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSession_Login_Unlocks(t *testing.T) {
	s := newTestSession(t)
	require.Equal(t, StateUnauthenticated, s.State())

	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	assert.Equal(t, StateUnlocked, s.State())

	key, err := s.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestSession_Login_EmptySecret(t *testing.T) {
	s := newTestSession(t)

	err := s.Login("", testSalt, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestSession_Login_MalformedSalt(t *testing.T) {
	s := newTestSession(t)

	err := s.Login(testSecret, "not-a-salt", time.Minute)
	assert.ErrorIs(t, err, keychain.ErrMalformedSalt)
	assert.Equal(t, StateUnauthenticated, s.State())
}

// ── Lock / Unlock ────────────────────────────────────────────────────────────

func TestSession_Lock_DiscardsKey(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	s.Lock()
	assert.Equal(t, StateLocked, s.State())

	_, err := s.Key()
	assert.ErrorIs(t, err, ErrNotUnlocked)
}

func TestSession_Unlock_ReDerivesSameKey(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	loginKey, err := s.Key()
	require.NoError(t, err)

	s.Lock()
	require.NoError(t, s.Unlock(testSecret))
	assert.Equal(t, StateUnlocked, s.State())

	unlockKey, err := s.Key()
	require.NoError(t, err)
	assert.Equal(t, loginKey, unlockKey, "unlock must converge on the login key")
}

func TestSession_Unlock_WrongSecretYieldsDifferentKey(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	loginKey, err := s.Key()
	require.NoError(t, err)

	s.Lock()

	// The session cannot verify the secret locally: a wrong secret unlocks
	// "successfully" with a key that will fail to decrypt existing records.
	require.NoError(t, s.Unlock(testWrong))

	unlockKey, err := s.Key()
	require.NoError(t, err)
	assert.NotEqual(t, loginKey, unlockKey)
}

func TestSession_Unlock_Unauthenticated(t *testing.T) {
	s := newTestSession(t)

	err := s.Unlock(testSecret)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_Unlock_EmptySecret(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	s.Lock()

	err := s.Unlock("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, StateLocked, s.State())
}

func TestSession_Unlock_AlreadyUnlockedIsNoop(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	require.NoError(t, s.Unlock(testSecret))
	assert.Equal(t, StateUnlocked, s.State())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSession_Logout_FromAnyState(t *testing.T) {
	states := map[string]func(s *Session){
		"unauthenticated": func(s *Session) {},
		"unlocked": func(s *Session) {
			require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
		},
		"locked": func(s *Session) {
			require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
			s.Lock()
		},
	}

	for name, setup := range states {
		t.Run(name, func(t *testing.T) {
			s := newTestSession(t)
			setup(s)

			s.Logout()
			assert.Equal(t, StateUnauthenticated, s.State())

			_, err := s.Key()
			assert.ErrorIs(t, err, ErrNotUnlocked)

			// Identity is gone too: unlock has no salt to derive from.
			assert.ErrorIs(t, s.Unlock(testSecret), ErrNotAuthenticated)
		})
	}
}

func TestSession_Logout_IsNotTerminal(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	s.Logout()

	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	assert.Equal(t, StateUnlocked, s.State())
}

// ── Auto-lock ────────────────────────────────────────────────────────────────

func TestSession_CheckAutoLock_LocksAfterInactivity(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	now := time.Now()
	s.now = func() time.Time { return now }
	s.MarkActivity()

	// Within the window: no transition.
	now = now.Add(59 * time.Second)
	assert.False(t, s.CheckAutoLock())
	assert.Equal(t, StateUnlocked, s.State())

	// Window elapsed: lock.
	now = now.Add(2 * time.Second)
	assert.True(t, s.CheckAutoLock())
	assert.Equal(t, StateLocked, s.State())
}

func TestSession_MarkActivity_DefersAutoLock(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))

	now := time.Now()
	s.now = func() time.Time { return now }
	s.MarkActivity()

	now = now.Add(45 * time.Second)
	s.MarkActivity()

	now = now.Add(45 * time.Second)
	assert.False(t, s.CheckAutoLock(), "activity 45s ago must defer a 1m auto-lock")
	assert.Equal(t, StateUnlocked, s.State())
}

func TestSession_MarkActivity_IgnoredWhenLocked(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	s.Lock()

	s.MarkActivity()
	assert.Equal(t, StateLocked, s.State())
	assert.False(t, s.CheckAutoLock())
}

func TestSession_SetAutoLockDuration(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Login(testSecret, testSalt, time.Hour))

	now := time.Now()
	s.now = func() time.Time { return now }
	s.MarkActivity()

	s.SetAutoLockDuration(time.Minute)

	now = now.Add(2 * time.Minute)
	assert.True(t, s.CheckAutoLock())
	assert.Equal(t, StateLocked, s.State())
}

func TestSession_CheckAutoLock_NoopWhenNotUnlocked(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.CheckAutoLock())

	require.NoError(t, s.Login(testSecret, testSalt, time.Minute))
	s.Logout()
	assert.False(t, s.CheckAutoLock())
}
