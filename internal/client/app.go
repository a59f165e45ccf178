// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package client

import (
	"context"
	"errors"

	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/internal/tui"
	"github.com/pivault/pivault/internal/workers"
)

// App ties the auth flow, the vault loop, and the session watcher together.
// One Run call covers one login: when the user logs out, Run recurses into a
// fresh auth flow.
type App struct {
	services *service.ClientServices
	session  *session.Session
	ui       *tui.TUI
	cfg      config.ClientSession
	logger   *logger.Logger
}

// NewApp wires the client application from its already-constructed parts.
func NewApp(services *service.ClientServices, sess *session.Session, ui *tui.TUI, cfg config.ClientSession, logger *logger.Logger) (*App, error) {
	return &App{
		services: services,
		session:  sess,
		ui:       ui,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run drives the client lifecycle: authenticate, start the auto-lock
// watcher, run the vault loop, and start over after a logout. A user quit
// from the auth flow ends the process normally.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.ui.LoginFlow(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	watcher := session.NewWatcher(a.session)
	watcher.SetInterval(a.cfg.AutoLockCheckInterval)

	background := workers.NewWorkers(watcher)
	background.Run()
	defer watcher.Stop()

	logout, err := a.ui.MainLoop(ctx)
	if err != nil {
		return err
	}
	if logout {
		watcher.Stop()
		return a.Run()
	}

	return nil
}
