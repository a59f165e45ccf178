// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/internal/validators"
	"github.com/pivault/pivault/models"
)

const (
	settingsFieldLanguage = iota
	settingsFieldAutoLock
	settingsFieldCount
)

// settingsModel edits the account preferences. Saving pushes the change to
// the server; a changed auto-lock window also lands in the running session,
// so the new inactivity limit applies without a re-login.
type settingsModel struct {
	inputs  []textinput.Model
	focus   int
	loading bool
	saving  bool
	errMsg  string
}

func newSettingsModel() settingsModel {
	inputs := make([]textinput.Model, settingsFieldCount)

	inputs[settingsFieldLanguage] = textinput.New()
	inputs[settingsFieldLanguage].Placeholder = "en"
	inputs[settingsFieldLanguage].Width = 10
	inputs[settingsFieldLanguage].CharLimit = 8
	inputs[settingsFieldLanguage].Focus()

	inputs[settingsFieldAutoLock] = textinput.New()
	inputs[settingsFieldAutoLock].Placeholder = "5"
	inputs[settingsFieldAutoLock].Width = 10
	inputs[settingsFieldAutoLock].CharLimit = 3

	return settingsModel{inputs: inputs, loading: true}
}

func (s *settingsModel) fill(user models.User) {
	s.loading = false
	s.inputs[settingsFieldLanguage].SetValue(user.Language)
	s.inputs[settingsFieldAutoLock].SetValue(strconv.Itoa(user.AutoLockMinutes))
}

// update reads the form back into a request, rejecting values the server
// would bounce so the user gets the message next to the field instead.
func (s settingsModel) update() (models.SettingsUpdate, error) {
	lang := strings.TrimSpace(s.inputs[settingsFieldLanguage].Value())
	if lang == "" {
		return models.SettingsUpdate{}, errors.New("Language is required")
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(s.inputs[settingsFieldAutoLock].Value()))
	if err != nil {
		return models.SettingsUpdate{}, errors.New("Auto-lock must be a number of minutes")
	}
	if minutes < validators.MinAutoLockMinutes || minutes > validators.MaxAutoLockMinutes {
		return models.SettingsUpdate{}, fmt.Errorf(
			"Auto-lock must be between %d and %d minutes",
			validators.MinAutoLockMinutes, validators.MaxAutoLockMinutes)
	}

	return models.SettingsUpdate{Language: &lang, AutoLockMinutes: &minutes}, nil
}

func (s *settingsModel) focusNext() {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + 1) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *settingsModel) focusPrev() {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus - 1 + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (m mainLoopModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "tab", "down":
		m.settings.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.settings.focusPrev()
		return m, nil
	case "enter":
		if m.settings.saving || m.settings.loading {
			return m, nil
		}

		update, err := m.settings.update()
		if err != nil {
			m.settings.errMsg = err.Error()
			return m, nil
		}

		m.settings.errMsg = ""
		m.settings.saving = true
		return m, m.cmdSaveSettings(update)
	}

	var cmd tea.Cmd
	m.settings.inputs[m.settings.focus], cmd = m.settings.inputs[m.settings.focus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) cmdLoadSettings() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		user, err := auth.CurrentUser(ctx)
		return settingsLoadedMsg{user: user, err: err}
	}
}

func (m mainLoopModel) cmdSaveSettings(update models.SettingsUpdate) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		user, err := auth.UpdateSettings(ctx, update)
		return settingsSavedMsg{user: user, err: err}
	}
}

func (s settingsModel) View() string {
	var b strings.Builder

	if s.loading {
		b.WriteString("Loading...\n")
	} else {
		b.WriteString("Language            [")
		b.WriteString(s.inputs[settingsFieldLanguage].View())
		b.WriteString("]\n")
		b.WriteString("Auto-lock (minutes) [")
		b.WriteString(s.inputs[settingsFieldAutoLock].View())
		b.WriteString("]\n")

		if s.saving {
			b.WriteString("\n[Saving...]\n")
		} else {
			b.WriteString("\n[Save]\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + s.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SETTINGS", strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}
