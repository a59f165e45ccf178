// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/internal/clipboard"
	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenGenerator
	screenLocked
	screenConfirmDelete
	screenSettings
	screenImport
)

const sessionPollInterval = time.Second

// mainLoopModel covers the whole unlocked part of the client: the entry
// list, the detail view, the create/edit form, the password generator, the
// settings and import forms, and the lock screen the UI falls into when the
// inactivity window elapses.
type mainLoopModel struct {
	ctx       context.Context
	services  *service.ClientServices
	session   *session.Session
	clipboard *clipboard.Guard
	cfg       config.ClientSession

	screen  screen
	entries []models.DecryptedEntry
	idx     int
	loading bool
	status  string
	errMsg  string

	detailReveal bool

	form formModel

	generator generatorModel

	settings   settingsModel
	importForm importModel

	lockInput     textinput.Model
	lockErr       string
	lockUnlocking bool

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, sess *session.Session, guard *clipboard.Guard, cfg config.ClientSession) mainLoopModel {
	lockInput := textinput.New()
	lockInput.Placeholder = "master password"
	lockInput.EchoMode = textinput.EchoPassword
	lockInput.EchoCharacter = '*'
	lockInput.Width = 40

	return mainLoopModel{
		ctx:       ctx,
		services:  services,
		session:   sess,
		clipboard: guard,
		cfg:       cfg,
		screen:    screenList,
		loading:   true,
		form:      newFormModel(),
		generator: newGeneratorModel(),
		lockInput: lockInput,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadEntries(), cmdSessionTick())
}

func cmdSessionTick() tea.Cmd {
	return tea.Tick(sessionPollInterval, func(time.Time) tea.Msg {
		return sessionTickMsg{}
	})
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionTickMsg:
		// The watcher wipes the key in the background; the tick lets the UI
		// notice and fall into the lock screen.
		m.session.CheckAutoLock()
		if m.session.State() == session.StateLocked && m.screen != screenLocked {
			m.screen = screenLocked
			m.lockInput.SetValue("")
			m.lockInput.Focus()
			m.lockErr = ""
		}
		return m, cmdSessionTick()

	case entriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.entries = msg.entries
		if m.idx >= len(m.entries) {
			m.idx = len(m.entries) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case entrySavedMsg:
		m.form.saving = false
		if msg.err != nil {
			m.form.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.screen = screenList
		m.loading = true
		m.status = "Saved"
		return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatusLater())

	case entryDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			m.screen = screenList
			return m, nil
		}
		m.screen = screenList
		m.loading = true
		m.status = "Entry deleted"
		return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatusLater())

	case unlockDoneMsg:
		m.lockUnlocking = false
		if msg.err != nil {
			m.lockErr = msg.err.Error()
			return m, nil
		}
		// A wrong password yields a key that cannot decrypt anything, so the
		// list reload doubles as the verification step.
		m.screen = screenList
		m.loading = true
		return m, m.cmdLoadEntries()

	case settingsLoadedMsg:
		m.settings.loading = false
		if msg.err != nil {
			m.settings.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.settings.fill(msg.user)
		return m, nil

	case settingsSavedMsg:
		m.settings.saving = false
		if msg.err != nil {
			m.settings.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.screen = screenList
		m.status = fmt.Sprintf("Settings saved, auto-lock after %dm", msg.user.AutoLockMinutes)
		return m, cmdClearStatusLater()

	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Vault exported to " + msg.path
		return m, cmdClearStatusLater()

	case importDoneMsg:
		m.importForm.running = false
		if msg.err != nil {
			m.importForm.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.screen = screenList
		m.loading = true
		m.status = fmt.Sprintf("Imported %d entries", msg.count)
		return m, tea.Batch(m.cmdLoadEntries(), cmdClearStatusLater())

	case copiedMsg:
		m.status = msg.what + " copied, clipboard clears in " + m.clipboardTimeout().String()
		return m, cmdClearStatusLater()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		m.session.MarkActivity()
		return m.handleKey(msg)
	}

	return m, nil
}

func (m mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenGenerator:
		return m.updateGenerator(msg)
	case screenLocked:
		return m.updateLocked(msg)
	case screenConfirmDelete:
		return m.updateConfirmDelete(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenImport:
		return m.updateImport(msg)
	}
	return m, nil
}

// ── list screen ──────────────────────────────

func (m mainLoopModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); ok {
			m.detailReveal = false
			m.screen = screenDetail
		}
	case "n":
		m.form = newFormModel()
		m.screen = screenForm
	case "e":
		if entry, ok := m.current(); ok {
			m.form = newFormModelFromEntry(entry)
			m.screen = screenForm
		}
	case "d":
		if _, ok := m.current(); ok {
			m.screen = screenConfirmDelete
		}
	case "g":
		m.generator = newGeneratorModel()
		m.screen = screenGenerator
	case "r":
		m.loading = true
		return m, m.cmdLoadEntries()
	case "s":
		m.settings = newSettingsModel()
		m.screen = screenSettings
		return m, m.cmdLoadSettings()
	case "o":
		m.status = "Exporting..."
		return m, m.cmdExport()
	case "i":
		m.importForm = newImportModel()
		m.screen = screenImport
	case "x":
		m.session.Lock()
		m.screen = screenLocked
		m.lockInput.SetValue("")
		m.lockInput.Focus()
		m.lockErr = ""
	case "l":
		m.logout = true
		return m, tea.Sequence(m.cmdLogout(), tea.Quit)
	}
	return m, nil
}

func (m mainLoopModel) current() (models.DecryptedEntry, bool) {
	if len(m.entries) == 0 || m.idx < 0 || m.idx >= len(m.entries) {
		return models.DecryptedEntry{}, false
	}
	return m.entries[m.idx], true
}

// ── detail screen ────────────────────────────

func (m mainLoopModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry, ok := m.current()
	if !ok {
		m.screen = screenList
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.detailReveal = false
		m.screen = screenList
	case "s":
		m.detailReveal = !m.detailReveal
	case "c":
		return m, m.cmdCopy(entry.Record.Password, "Password")
	case "u":
		return m, m.cmdCopy(entry.Record.Username, "Username")
	case "e":
		m.form = newFormModelFromEntry(entry)
		m.screen = screenForm
	case "d":
		m.screen = screenConfirmDelete
	}
	return m, nil
}

// ── delete confirmation ──────────────────────

func (m mainLoopModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if entry, ok := m.current(); ok {
			return m, m.cmdDeleteEntry(entry.ID)
		}
		m.screen = screenList
	case "n", "esc":
		m.screen = screenList
	}
	return m, nil
}

// ── lock screen ──────────────────────────────

func (m mainLoopModel) updateLocked(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.lockUnlocking {
			return m, nil
		}
		pass := m.lockInput.Value()
		if pass == "" {
			m.lockErr = "Master password is required"
			return m, nil
		}
		m.lockErr = ""
		m.lockUnlocking = true
		return m, m.cmdUnlock(pass)
	case "ctrl+l":
		m.logout = true
		return m, tea.Sequence(m.cmdLogout(), tea.Quit)
	}

	var cmd tea.Cmd
	m.lockInput, cmd = m.lockInput.Update(msg)
	return m, cmd
}

// ── commands ─────────────────────────────────

func (m mainLoopModel) cmdLoadEntries() tea.Cmd {
	ctx := m.ctx
	vault := m.services.VaultService

	return func() tea.Msg {
		entries, err := vault.GetEntries(ctx, nil)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m mainLoopModel) cmdDeleteEntry(entryID string) tea.Cmd {
	ctx := m.ctx
	vault := m.services.VaultService

	return func() tea.Msg {
		return entryDeletedMsg{err: vault.DeleteEntry(ctx, entryID)}
	}
}

func (m mainLoopModel) cmdUnlock(pass string) tea.Cmd {
	auth := m.services.AuthService

	return func() tea.Msg {
		return unlockDoneMsg{err: auth.Unlock(pass)}
	}
}

func (m mainLoopModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		// Best effort: local material is wiped even when the server call
		// fails, so there is nothing actionable to show.
		_ = auth.Logout(ctx)
		return nil
	}
}

func (m mainLoopModel) cmdCopy(text, what string) tea.Cmd {
	guard := m.clipboard
	timeout := m.clipboardTimeout()

	return func() tea.Msg {
		guard.CopyWithAutoClear(text, timeout)
		return copiedMsg{what: what}
	}
}

func (m mainLoopModel) clipboardTimeout() time.Duration {
	if m.cfg.ClipboardClearTimeout > 0 {
		return m.cfg.ClipboardClearTimeout
	}
	return clipboard.DefaultClearTimeout
}

func cmdClearStatusLater() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// ── views ────────────────────────────────────

func (m mainLoopModel) View() string {
	switch m.screen {
	case screenDetail:
		if entry, ok := m.current(); ok {
			return renderDetail(entry, m.detailReveal, m.status)
		}
		return m.viewList()
	case screenForm:
		return m.form.View()
	case screenGenerator:
		return m.generator.View()
	case screenLocked:
		return m.viewLocked()
	case screenConfirmDelete:
		return m.viewConfirmDelete()
	case screenSettings:
		return m.settings.View()
	case screenImport:
		return m.importForm.View()
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...\n")
	} else if len(m.entries) == 0 {
		b.WriteString("Vault is empty\n")
	} else {
		for i, entry := range m.entries {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			title := valueOrDash(entry.Record.Title)
			user := fitText(entry.Record.Username, 30)
			b.WriteString(cursor)
			b.WriteString(fitText(title, 36))
			if user != "" {
				b.WriteString("  ")
				b.WriteString(helpStyle.Render(user))
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("VAULT",
		strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ e: edit │ d: delete │ g: generator │ s: settings │ o: export │ i: import │ r: reload │ x: lock │ l: logout │ q: quit")
}

func (m mainLoopModel) viewLocked() string {
	var b strings.Builder
	b.WriteString("The vault locked after inactivity. The key was wiped from memory.\n\n")
	b.WriteString("Password  [")
	b.WriteString(m.lockInput.View())
	b.WriteString("]\n")

	if m.lockUnlocking {
		b.WriteString("\n[Unlocking...]\n")
	}
	if m.lockErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.lockErr))
		b.WriteString("\n")
	}

	return renderPage("LOCKED", strings.TrimRight(b.String(), "\n"), "enter: unlock │ ctrl+l: logout")
}

func (m mainLoopModel) viewConfirmDelete() string {
	entry, _ := m.current()
	data := "Delete \"" + valueOrDash(entry.Record.Title) + "\"? This cannot be undone."
	return renderPage("CONFIRM", data, "y: delete │ n/esc: cancel")
}
