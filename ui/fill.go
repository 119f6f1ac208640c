package ui

import (
	"strings"

	"snipbox/card"
	"snipbox/model"
	"snipbox/placeholder"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// openCard shows the variable inputs for cmd, reusing the values typed
// earlier in this session. Commands without variables are copied at once.
func (a *App) openCard(cmd model.Command) (tea.Model, tea.Cmd) {
	c, ok := a.cards[cmd.ID]
	if !ok {
		c = card.New(cmd)
		a.cards[cmd.ID] = c
	}

	names := c.Variables()
	if len(names) == 0 {
		a.copyCard(c)
		return a, nil
	}

	a.active = c
	a.fillNames = names
	a.fillInputs = make([]textinput.Model, len(names))
	for i, name := range names {
		in := textinput.New()
		in.Placeholder = name
		in.SetValue(c.Value(name))
		a.fillInputs[i] = in
	}
	a.fillFocus = 0
	a.mode = modeFill
	a.searchInput.Blur()
	return a, a.fillInputs[0].Focus()
}

func (a *App) updateFill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.closeCard()
		return a, nil

	case "tab", "down":
		a.fillFocus = (a.fillFocus + 1) % len(a.fillInputs)
		return a, a.focusFillInput()

	case "shift+tab", "up":
		a.fillFocus--
		if a.fillFocus < 0 {
			a.fillFocus = len(a.fillInputs) - 1
		}
		return a, a.focusFillInput()

	case "enter":
		if a.copyCard(a.active) {
			a.closeCard()
		}
		return a, nil

	default:
		var cmd tea.Cmd
		a.fillInputs[a.fillFocus], cmd = a.fillInputs[a.fillFocus].Update(msg)
		a.active.Set(a.fillNames[a.fillFocus], a.fillInputs[a.fillFocus].Value())
		return a, cmd
	}
}

// copyCard copies the resolved command and records the copy. It reports
// whether the copy went through.
func (a *App) copyCard(c *card.Card) bool {
	entry, err := c.Copy(a.clip, a.usage, a.now())
	if err != nil {
		a.showError(err)
		return false
	}
	a.status = "Copied: " + truncate(entry.FilledCommand, max(a.width-12, 20))
	return true
}

func (a *App) closeCard() {
	a.active = nil
	a.fillNames = nil
	a.fillInputs = nil
	a.mode = modeNormal
	a.searchInput.Focus()
}

func (a *App) focusFillInput() tea.Cmd {
	for i := range a.fillInputs {
		a.fillInputs[i].Blur()
	}
	return a.fillInputs[a.fillFocus].Focus()
}

func (a *App) renderFill() string {
	var b strings.Builder
	cmd := a.active.Command

	b.WriteString(a.styles.label.Render(cmd.Title))
	if cmd.Category != "" {
		b.WriteString(" " + a.styles.category.Render("["+cmd.Category+"]"))
	}
	b.WriteString("\n")
	if cmd.Description != "" {
		b.WriteString(a.styles.muted.Render(cmd.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, in := range a.fillInputs {
		b.WriteString(a.styles.label.Render(placeholder.Marker(a.fillNames[i]) + " "))
		style := a.styles.input
		if i == a.fillFocus {
			style = a.styles.focusedInput
		}
		b.WriteString(style.Width(max(a.width-20, 20)).Render(in.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.border.Width(max(a.width-4, 20)).Render("$ " + a.active.Resolved()))
	b.WriteString("\n")

	return b.String()
}
