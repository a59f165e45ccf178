// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
)

func TestWatcher_LocksInactiveSession(t *testing.T) {
	s := NewSession(keychain.NewKeyChain(), logger.Nop())
	require.NoError(t, s.Login(testSecret, testSalt, 30*time.Millisecond))

	w := NewWatcher(s)
	w.Start(context.Background(), 10*time.Millisecond)
	defer w.Stop()

	require.Eventually(t, func() bool {
		return s.State() == StateLocked
	}, time.Second, 5*time.Millisecond, "watcher should auto-lock the idle session")
}

func TestWatcher_ActivityKeepsSessionUnlocked(t *testing.T) {
	s := NewSession(keychain.NewKeyChain(), logger.Nop())
	require.NoError(t, s.Login(testSecret, testSalt, 50*time.Millisecond))

	w := NewWatcher(s)
	w.Start(context.Background(), 10*time.Millisecond)
	defer w.Stop()

	// Keep marking activity for a few auto-lock windows.
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		s.MarkActivity()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, StateUnlocked, s.State(), "activity within the window must prevent auto-lock")
}

func TestWatcher_StopHaltsChecks(t *testing.T) {
	s := NewSession(keychain.NewKeyChain(), logger.Nop())
	require.NoError(t, s.Login(testSecret, testSalt, 20*time.Millisecond))

	w := NewWatcher(s)
	w.Start(context.Background(), 5*time.Millisecond)
	w.Stop()

	// No goroutine is left ticking: the idle session stays unlocked.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StateUnlocked, s.State())
}

func TestWatcher_StopWithoutStartIsNoop(t *testing.T) {
	w := NewWatcher(NewSession(keychain.NewKeyChain(), logger.Nop()))
	w.Stop() // must not panic or block
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	s := NewSession(keychain.NewKeyChain(), logger.Nop())
	require.NoError(t, s.Login(testSecret, testSalt, 20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(s)
	w.Start(ctx, 5*time.Millisecond)
	cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StateUnlocked, s.State())
}

func TestWatcher_RestartReplacesLoop(t *testing.T) {
	s := NewSession(keychain.NewKeyChain(), logger.Nop())
	require.NoError(t, s.Login(testSecret, testSalt, time.Hour))

	w := NewWatcher(s)
	w.Start(context.Background(), 5*time.Millisecond)
	w.Start(context.Background(), 5*time.Millisecond) // replaces, does not stack
	w.Stop()
}
