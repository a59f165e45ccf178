// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/internal/password"
	"github.com/pivault/pivault/models"
)

const (
	formFieldTitle = iota
	formFieldUsername
	formFieldPassword
	formFieldURL
	formFieldNotes
	formFieldCount
)

// formModel is the create/edit form for one vault entry. An empty entryID
// means create; otherwise the submit re-encrypts and replaces the stored
// entry.
type formModel struct {
	entryID string

	inputs []textinput.Model
	focus  int
	saving bool
	errMsg string
}

func newFormModel() formModel {
	inputs := make([]textinput.Model, formFieldCount)

	labels := []string{"title", "username", "password", "url", "notes"}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = labels[i]
		inputs[i].Width = 40
		inputs[i].CharLimit = 1024
	}
	inputs[formFieldTitle].Focus()
	inputs[formFieldPassword].EchoMode = textinput.EchoPassword
	inputs[formFieldPassword].EchoCharacter = '*'

	return formModel{inputs: inputs}
}

func newFormModelFromEntry(entry models.DecryptedEntry) formModel {
	m := newFormModel()
	m.entryID = entry.ID
	m.inputs[formFieldTitle].SetValue(entry.Record.Title)
	m.inputs[formFieldUsername].SetValue(entry.Record.Username)
	m.inputs[formFieldPassword].SetValue(entry.Record.Password)
	m.inputs[formFieldURL].SetValue(entry.Record.URL)
	m.inputs[formFieldNotes].SetValue(entry.Record.Notes)
	return m
}

func (f formModel) record() models.Record {
	return models.Record{
		Title:    strings.TrimSpace(f.inputs[formFieldTitle].Value()),
		Username: strings.TrimSpace(f.inputs[formFieldUsername].Value()),
		Password: f.inputs[formFieldPassword].Value(),
		URL:      strings.TrimSpace(f.inputs[formFieldURL].Value()),
		Notes:    f.inputs[formFieldNotes].Value(),
	}
}

func (f *formModel) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formModel) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (m mainLoopModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.form.saving {
			return m, nil
		}

		rec := m.form.record()
		if rec.Title == "" {
			m.form.errMsg = "Title is required"
			return m, nil
		}

		m.form.errMsg = ""
		m.form.saving = true
		return m, m.cmdSaveEntry(m.form.entryID, rec)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) cmdSaveEntry(entryID string, rec models.Record) tea.Cmd {
	ctx := m.ctx
	vault := m.services.VaultService

	return func() tea.Msg {
		var err error
		if entryID == "" {
			_, err = vault.CreateEntry(ctx, rec)
		} else {
			_, err = vault.UpdateEntry(ctx, entryID, rec)
		}
		return entrySavedMsg{err: err}
	}
}

func (f formModel) View() string {
	var b strings.Builder

	labels := []string{"Title   ", "Username", "Password", "URL     ", "Notes   "}
	for i, input := range f.inputs {
		b.WriteString(labels[i])
		b.WriteString("  [")
		b.WriteString(input.View())
		b.WriteString("]\n")
		if i == formFieldPassword {
			if pw := input.Value(); pw != "" {
				b.WriteString("Strength  ")
				b.WriteString(renderStrengthMeter(password.Score(pw)))
				b.WriteString("\n")
			}
		}
	}

	if f.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	title := "NEW ENTRY"
	if f.entryID != "" {
		title = "EDIT ENTRY"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}
