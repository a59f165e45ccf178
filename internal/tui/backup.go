// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/models"
)

// importModel asks for the path of a previously exported bundle. The replace
// toggle clears the server-side vault before loading the file.
type importModel struct {
	path    textinput.Model
	replace bool
	running bool
	errMsg  string
}

func newImportModel() importModel {
	path := textinput.New()
	path.Placeholder = "pivault-export.json"
	path.Width = 50
	path.CharLimit = 512
	path.Focus()

	return importModel{path: path}
}

func (m mainLoopModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "ctrl+r":
		m.importForm.replace = !m.importForm.replace
		return m, nil
	case "enter":
		if m.importForm.running {
			return m, nil
		}

		path := strings.TrimSpace(m.importForm.path.Value())
		if path == "" {
			m.importForm.errMsg = "File path is required"
			return m, nil
		}

		m.importForm.errMsg = ""
		m.importForm.running = true
		return m, m.cmdImport(path, m.importForm.replace)
	}

	var cmd tea.Cmd
	m.importForm.path, cmd = m.importForm.path.Update(msg)
	return m, cmd
}

func (m mainLoopModel) cmdExport() tea.Cmd {
	ctx := m.ctx
	vault := m.services.VaultService

	return func() tea.Msg {
		bundle, err := vault.Export(ctx)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("encode export bundle: %w", err)}
		}

		path := "pivault-export-" + time.Now().Format("20060102-150405") + ".json"
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return exportDoneMsg{err: fmt.Errorf("write export file: %w", err)}
		}
		return exportDoneMsg{path: path}
	}
}

func (m mainLoopModel) cmdImport(path string, replace bool) tea.Cmd {
	ctx := m.ctx
	vault := m.services.VaultService

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{err: fmt.Errorf("read import file: %w", err)}
		}

		var bundle models.ExportBundle
		if err := json.Unmarshal(data, &bundle); err != nil {
			return importDoneMsg{err: fmt.Errorf("decode import file: %w", err)}
		}

		count, err := vault.Import(ctx, bundle, replace)
		return importDoneMsg{count: count, err: err}
	}
}

func (f importModel) View() string {
	var b strings.Builder

	b.WriteString("File    [")
	b.WriteString(f.path.View())
	b.WriteString("]\n")

	replace := "[ ]"
	if f.replace {
		replace = "[x]"
	}
	b.WriteString("Replace ")
	b.WriteString(replace)
	b.WriteString("  clear the vault on the server before importing\n")

	if f.running {
		b.WriteString("\n[Importing...]\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return renderPage("IMPORT", strings.TrimRight(b.String(), "\n"), "esc: cancel │ ctrl+r: toggle replace │ enter: import")
}
