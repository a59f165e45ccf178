// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package session

import (
	"context"
	"sync"
	"time"
)

// DefaultCheckInterval is how often the watcher evaluates the inactivity
// window when no interval is supplied.
const DefaultCheckInterval = 10 * time.Second

// Watcher drives the recurring auto-lock check for one session. It is idle
// until Start is called and must be stopped when the session is terminated so
// no orphaned timer outlives it.
type Watcher struct {
	session  *Session
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a Watcher over session. The watcher is idle until Start
// is called.
func NewWatcher(session *Session) *Watcher {
	return &Watcher{session: session}
}

// SetInterval fixes the check interval used by Run. Zero or negative keeps
// DefaultCheckInterval.
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	w.interval = d
	w.mu.Unlock()
}

// Start stops any previously running check loop, then launches a background
// goroutine that calls CheckAutoLock every interval. If interval is zero or
// negative it defaults to DefaultCheckInterval. The goroutine exits when ctx
// is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				w.session.CheckAutoLock()
			}
		}
	}()
}

// Stop cancels the check loop's context and blocks until the goroutine has
// fully exited. Safe to call when the watcher is not running (no-op in that
// case).
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Run implements the workers.Worker interface: it starts the watcher under a
// background context with the interval fixed by SetInterval (or the default).
// Callers that need cancellation control use Start/Stop directly.
func (w *Watcher) Run() {
	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	w.Start(context.Background(), interval)
}
