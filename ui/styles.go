package ui

import (
	"github.com/charmbracelet/lipgloss"

	"snipbox/store"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	danger    lipgloss.Color
	warning   lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("99"),  // purple
		secondary: lipgloss.Color("240"), // gray
		accent:    lipgloss.Color("86"),  // green
		danger:    lipgloss.Color("196"), // red
		warning:   lipgloss.Color("214"),
		text:      lipgloss.Color("252"),
		muted:     lipgloss.Color("245"),
	}
	lightPalette = palette{
		primary:   lipgloss.Color("55"),
		secondary: lipgloss.Color("250"),
		accent:    lipgloss.Color("28"),
		danger:    lipgloss.Color("160"),
		warning:   lipgloss.Color("130"),
		text:      lipgloss.Color("235"),
		muted:     lipgloss.Color("242"),
	}
)

type styles struct {
	app      lipgloss.Style
	border   lipgloss.Style
	title    lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	preview  lipgloss.Style
	category lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style

	label        lipgloss.Style
	input        lipgloss.Style
	focusedInput lipgloss.Style

	err     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	help    lipgloss.Style
	helpKey lipgloss.Style
}

func newStyles(theme store.Theme) styles {
	p := darkPalette
	if theme == store.ThemeLight {
		p = lightPalette
	}

	return styles{
		app: lipgloss.NewStyle().
			Padding(1, 2),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.secondary).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Padding(0, 1),
		muted: lipgloss.NewStyle().
			Foreground(p.muted),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		normal: lipgloss.NewStyle().
			Foreground(p.text),
		preview: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		category: lipgloss.NewStyle().
			Foreground(p.primary),
		tab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		tabOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			Underline(true).
			Padding(0, 1),

		label: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.secondary).
			Padding(0, 1),
		focusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		err: lipgloss.NewStyle().
			Foreground(p.danger),
		success: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(p.muted),
		helpKey: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
	}
}
