// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package session owns the in-memory vault key and the state machine that
// governs its existence. The key exists only while the session is Unlocked;
// locking discards it but keeps the identity so it can be re-derived, and
// logging out discards everything.
package session

import (
	"sync"
	"time"

	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
)

// State is the lifecycle state of a client session.
type State int

const (
	// StateUnauthenticated is the initial state: no identity, no key.
	StateUnauthenticated State = iota
	// StateLocked holds the identity (salt, auto-lock setting) but no key.
	StateLocked
	// StateUnlocked holds the derived vault key and tracks user activity.
	StateUnlocked
)

// String implements [fmt.Stringer] for log output.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unauthenticated"
	}
}

// DefaultAutoLock is used when the server does not supply an auto-lock
// duration at login.
const DefaultAutoLock = 15 * time.Minute

// Session is one client's session: at most one vault key, guarded by a single
// mutex so concurrent lock/unlock/logout calls cannot interleave and leak a
// key across a transition it was not part of. Sessions are plain injectable
// objects: tests construct isolated instances, nothing is process-global.
type Session struct {
	keychain keychain.KeyChain
	log      *logger.Logger

	mu           sync.Mutex
	state        State
	key          []byte
	salt         string
	autoLock     time.Duration
	lastActivity time.Time

	// now is the clock, injectable for auto-lock tests.
	now func() time.Time
}

// NewSession constructs an Unauthenticated session over the given key chain.
func NewSession(kc keychain.KeyChain, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		keychain: kc,
		log:      log,
		state:    StateUnauthenticated,
		autoLock: DefaultAutoLock,
		now:      time.Now,
	}
}

// Login transitions Unauthenticated → Unlocked after a successful
// registration or server login: it derives the vault key from the master
// secret and the server-issued salt and starts the activity clock. The secret
// is used for derivation only and not retained. autoLock <= 0 falls back to
// DefaultAutoLock.
func (s *Session) Login(secret, saltHex string, autoLock time.Duration) error {
	if secret == "" {
		return ErrInvalidCredentials
	}

	key, err := s.keychain.DeriveKey(secret, saltHex)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeKeyLocked()
	if autoLock <= 0 {
		autoLock = DefaultAutoLock
	}
	s.state = StateUnlocked
	s.key = key
	s.salt = saltHex
	s.autoLock = autoLock
	s.lastActivity = s.now()

	s.log.Info().Str("state", s.state.String()).Msg("session unlocked")
	return nil
}

// Unlock transitions Locked → Unlocked by re-deriving the key from the
// retained salt. Determinism of the derivation makes unlock converge on the
// login key, so existing records stay decryptable. A wrong secret is not
// detectable here; it yields a key whose decrypt attempts fail.
func (s *Session) Unlock(secret string) error {
	s.mu.Lock()
	salt := s.salt
	state := s.state
	s.mu.Unlock()

	if state == StateUnauthenticated {
		return ErrNotAuthenticated
	}
	if state == StateUnlocked {
		return nil
	}
	if secret == "" {
		return ErrInvalidCredentials
	}

	// Derivation is deliberately slow; keep it outside the session lock.
	key, err := s.keychain.DeriveKey(secret, salt)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLocked {
		// Lost the race against a logout or a concurrent unlock; do not let
		// this key survive a transition it was not part of.
		wipe(key)
		if s.state == StateUnlocked {
			return nil
		}
		return ErrNotAuthenticated
	}

	s.state = StateUnlocked
	s.key = key
	s.lastActivity = s.now()

	s.log.Info().Str("state", s.state.String()).Msg("session unlocked")
	return nil
}

// Lock transitions Unlocked → Locked: the key is wiped, the identity (salt,
// auto-lock setting) is retained for a later Unlock. No-op in other states.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnlocked {
		return
	}
	s.wipeKeyLocked()
	s.state = StateLocked

	s.log.Info().Str("state", s.state.String()).Msg("session locked")
}

// Logout transitions any state → Unauthenticated, discarding key and
// identity. Unauthenticated is an entry point, not a failure state: Login may
// follow at any time.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeKeyLocked()
	s.salt = ""
	s.state = StateUnauthenticated

	s.log.Info().Str("state", s.state.String()).Msg("session terminated")
}

// MarkActivity records user interaction, deferring the auto-lock. Effective
// only while Unlocked.
func (s *Session) MarkActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUnlocked {
		s.lastActivity = s.now()
	}
}

// SetAutoLockDuration updates the inactivity window. d <= 0 restores the
// default. Takes effect on the next auto-lock check.
func (s *Session) SetAutoLockDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d <= 0 {
		d = DefaultAutoLock
	}
	s.autoLock = d
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Key returns a copy of the vault key, or ErrNotUnlocked when the session
// does not hold one. Returning a copy keeps the session the sole owner of the
// original bytes, so Logout can reliably destroy them.
func (s *Session) Key() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnlocked {
		return nil, ErrNotUnlocked
	}
	key := make([]byte, len(s.key))
	copy(key, s.key)
	return key, nil
}

// CheckAutoLock locks the session if it is Unlocked and the inactivity window
// has elapsed. Called periodically by the watcher; also safe to call
// directly. Reports whether a lock transition happened.
func (s *Session) CheckAutoLock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnlocked {
		return false
	}
	if s.now().Sub(s.lastActivity) < s.autoLock {
		return false
	}

	s.wipeKeyLocked()
	s.state = StateLocked

	s.log.Info().Str("state", s.state.String()).Msg("session auto-locked after inactivity")
	return true
}

// wipeKeyLocked overwrites and drops the key. Callers must hold s.mu.
func (s *Session) wipeKeyLocked() {
	wipe(s.key)
	s.key = nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
