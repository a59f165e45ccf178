// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"fmt"
	"strings"

	"github.com/pivault/pivault/models"
)

func renderDetail(entry models.DecryptedEntry, reveal bool, status string) string {
	var b strings.Builder

	pw := "••••••••"
	if reveal {
		pw = entry.Record.Password
	}

	b.WriteString(fmt.Sprintf("Username  %s\n", valueOrDash(entry.Record.Username)))
	b.WriteString(fmt.Sprintf("Password  %s\n", pw))
	b.WriteString(fmt.Sprintf("URL       %s\n", valueOrDash(entry.Record.URL)))
	b.WriteString(fmt.Sprintf("Notes     %s\n", valueOrDash(entry.Record.Notes)))

	if entry.CreatedAt != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("created %s", entry.CreatedAt)))
		if entry.UpdatedAt != "" && entry.UpdatedAt != entry.CreatedAt {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  updated %s", entry.UpdatedAt)))
		}
		b.WriteString("\n")
	}

	if status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}

	return renderPage(
		strings.ToUpper(valueOrDash(entry.Record.Title)),
		strings.TrimRight(b.String(), "\n"),
		"c: copy password │ u: copy username │ s: show/hide │ e: edit │ d: delete │ esc: back")
}
