// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pivault/pivault/internal/password"
	"github.com/pivault/pivault/models"
)

// generatorModel is the password generator screen: a policy the user toggles
// line by line, the latest generated password, and its live strength score.
type generatorModel struct {
	policy    models.PasswordPolicy
	generated string
	errMsg    string
	cursor    int
}

const generatorRows = 6 // length, upper, lower, digits, symbols, ambiguous

func newGeneratorModel() generatorModel {
	m := generatorModel{policy: models.DefaultPasswordPolicy()}
	m.regenerate()
	return m
}

func (g *generatorModel) regenerate() {
	generated, err := password.Generate(g.policy)
	if err != nil {
		g.errMsg = err.Error()
		return
	}
	g.errMsg = ""
	g.generated = generated
}

func (g *generatorModel) toggleCurrent() {
	switch g.cursor {
	case 1:
		g.policy.IncludeUpper = !g.policy.IncludeUpper
	case 2:
		g.policy.IncludeLower = !g.policy.IncludeLower
	case 3:
		g.policy.IncludeDigits = !g.policy.IncludeDigits
	case 4:
		g.policy.IncludeSymbols = !g.policy.IncludeSymbols
	case 5:
		g.policy.ExcludeAmbiguous = !g.policy.ExcludeAmbiguous
	}
	g.regenerate()
}

func (g *generatorModel) adjustLength(delta int) {
	g.policy.Length += delta
	if g.policy.Length < models.MinPasswordLength {
		g.policy.Length = models.MinPasswordLength
	}
	if g.policy.Length > models.MaxPasswordLength {
		g.policy.Length = models.MaxPasswordLength
	}
	g.regenerate()
}

func (m mainLoopModel) updateGenerator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "up", "k":
		if m.generator.cursor > 0 {
			m.generator.cursor--
		}
	case "down", "j":
		if m.generator.cursor < generatorRows-1 {
			m.generator.cursor++
		}
	case "left", "h":
		if m.generator.cursor == 0 {
			m.generator.adjustLength(-1)
		}
	case "right", "l":
		if m.generator.cursor == 0 {
			m.generator.adjustLength(+1)
		}
	case " ", "enter":
		if m.generator.cursor == 0 {
			m.generator.regenerate()
		} else {
			m.generator.toggleCurrent()
		}
	case "g":
		m.generator.regenerate()
	case "c":
		if m.generator.generated != "" {
			return m, m.cmdCopy(m.generator.generated, "Generated password")
		}
	}
	return m, nil
}

func (g generatorModel) View() string {
	var b strings.Builder

	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	rows := []string{
		fmt.Sprintf("Length            ◄ %d ►", g.policy.Length),
		fmt.Sprintf("%s Uppercase A-Z", check(g.policy.IncludeUpper)),
		fmt.Sprintf("%s Lowercase a-z", check(g.policy.IncludeLower)),
		fmt.Sprintf("%s Digits 0-9", check(g.policy.IncludeDigits)),
		fmt.Sprintf("%s Symbols !@#$...", check(g.policy.IncludeSymbols)),
		fmt.Sprintf("%s Exclude ambiguous (O/0, l/1)", check(g.policy.ExcludeAmbiguous)),
	}

	for i, row := range rows {
		cursor := "  "
		if i == g.cursor {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if g.generated != "" {
		b.WriteString(g.generated)
		b.WriteString("\n")
		b.WriteString("Strength  ")
		b.WriteString(renderStrengthMeter(password.Score(g.generated)))
		b.WriteString("\n")
	}

	if g.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + g.errMsg))
		b.WriteString("\n")
	}

	return renderPage("GENERATOR",
		strings.TrimRight(b.String(), "\n"),
		"space: toggle/regenerate │ ←/→: length │ c: copy │ g: regenerate │ esc: back")
}

// renderStrengthMeter draws the 0..7 additive score as a bar with a label.
func renderStrengthMeter(res models.StrengthResult) string {
	const maxScore = 7
	filled := strings.Repeat("█", res.Score)
	empty := strings.Repeat("░", maxScore-res.Score)
	return meterStyle.Render(fmt.Sprintf("%s%s %d/%d %s", filled, empty, res.Score, maxScore, strengthLabel(res.Score)))
}

func strengthLabel(score int) string {
	switch {
	case score <= 2:
		return "weak"
	case score <= 4:
		return "fair"
	case score <= 6:
		return "strong"
	default:
		return "excellent"
	}
}
