// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/models"
)

// NavigateTo switches the root router to another page. An optional payload
// is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes an async login or register command.
type LoginResult struct {
	Err   error
	Email string
}

// RegisterSuccessNotice is shown on the menu after a completed registration.
type RegisterSuccessNotice struct {
	Email string
}

type entriesLoadedMsg struct {
	entries []models.DecryptedEntry
	err     error
}

type entrySavedMsg struct {
	err error
}

type entryDeletedMsg struct {
	err error
}

type unlockDoneMsg struct {
	err error
}

type copiedMsg struct {
	what string
}

type settingsLoadedMsg struct {
	user models.User
	err  error
}

type settingsSavedMsg struct {
	user models.User
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

type importDoneMsg struct {
	count int
	err   error
}

type clearStatusMsg struct{}

type sessionTickMsg struct{}
