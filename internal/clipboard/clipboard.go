// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package clipboard implements clipboard hygiene for copied secrets: a copy
// schedules a deferred clear that fires only if the clipboard still holds the
// copied value, so a newer, unrelated copy is never destroyed.
package clipboard

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/pivault/pivault/internal/logger"
)

// DefaultClearTimeout is applied when CopyWithAutoClear is called with a
// non-positive timeout.
const DefaultClearTimeout = 30 * time.Second

// SystemClipboard abstracts the OS clipboard so the guard can be tested
// without touching the real one.
type SystemClipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard is the production implementation backed by
// github.com/atotto/clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Guard copies secrets to the system clipboard and schedules conditional
// clears. Each copy arms its own timer; an earlier timer is implicitly
// superseded by a later copy of different content because the clear checks
// equality before wiping. A later copy of the same content simply restarts
// the countdown.
type Guard struct {
	clip  SystemClipboard
	after func(d time.Duration, f func()) *time.Timer
	log   *logger.Logger

	wg sync.WaitGroup
}

// NewGuard constructs a Guard over the real system clipboard.
func NewGuard(log *logger.Logger) *Guard {
	return NewGuardWithClipboard(systemClipboard{}, log)
}

// NewGuardWithClipboard constructs a Guard over the given clipboard
// collaborator. Used by tests; production code calls NewGuard.
func NewGuardWithClipboard(clip SystemClipboard, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{clip: clip, after: time.AfterFunc, log: log}
}

// CopyWithAutoClear writes text to the clipboard and arms a single deferred
// check after timeout. The check reads the clipboard and clears it only if
// the contents still equal text. Returns false, and arms nothing, if the
// clipboard write is denied; read or clear failures during the deferred check
// are swallowed. Clipboard contents are never logged.
func (g *Guard) CopyWithAutoClear(text string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultClearTimeout
	}

	if err := g.clip.WriteAll(text); err != nil {
		g.log.Warn().Err(err).Msg("clipboard unavailable")
		return false
	}

	g.wg.Add(1)
	g.after(timeout, func() {
		defer g.wg.Done()

		current, err := g.clip.ReadAll()
		if err != nil {
			g.log.Warn().Err(err).Msg("clipboard read failed during auto-clear")
			return
		}
		if current != text {
			// Something else was copied in the meantime; leave it alone.
			return
		}
		if err := g.clip.WriteAll(""); err != nil {
			g.log.Warn().Err(err).Msg("clipboard clear failed")
		}
	})

	return true
}

// Wait blocks until every armed auto-clear has fired. Used by tests and by
// client shutdown so a pending clear is not abandoned with a secret still on
// the clipboard.
func (g *Guard) Wait() {
	g.wg.Wait()
}
