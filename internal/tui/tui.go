// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/internal/clipboard"
	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/session"
)

// ErrUserQuit reports that the user left the program from the auth flow.
var ErrUserQuit = errors.New("user quit the program")

// TUI owns the two top-level Bubble Tea programs: the authentication flow
// and the unlocked vault loop.
type TUI struct {
	services  *service.ClientServices
	session   *session.Session
	clipboard *clipboard.Guard
	cfg       config.ClientSession
	logger    *logger.Logger
}

// New builds the terminal client over the given client services and session.
func New(services *service.ClientServices, sess *session.Session, guard *clipboard.Guard, cfg config.ClientSession, logger *logger.Logger) (*TUI, error) {
	return &TUI{
		services:  services,
		session:   sess,
		clipboard: guard,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// LoginFlow runs the menu/login/register pages until the user authenticates
// or quits. On success the session is already unlocked by the auth service.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	if !result.authenticated {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the unlocked vault UI and blocks until the user logs out or
// quits. Returns logout=true when the caller should restart the auth flow.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, t.session, t.clipboard, t.cfg)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
