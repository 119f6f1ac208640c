package ui

import (
	"fmt"
	"strings"

	"snipbox/stats"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) openDashboard() {
	a.mode = modeDashboard
	a.searchInput.Blur()
	a.dashboard.SetContent(a.dashboardContent())
	a.dashboard.GotoTop()
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc", "q", "ctrl+s":
		a.mode = modeNormal
		a.searchInput.Focus()
		return a, nil

	default:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd
	}
}

// dashboardContent renders both rankings from the full copy log.
func (a *App) dashboardContent() string {
	logs := a.usage.List()
	if len(logs) == 0 {
		return a.styles.muted.Render("Nothing copied yet.")
	}

	var b strings.Builder
	b.WriteString(a.styles.label.Render(fmt.Sprintf("Most copied commands (%d copies total)", len(logs))))
	b.WriteString("\n\n")
	for i, e := range stats.TopFilled(logs, stats.DefaultLimit) {
		b.WriteString(a.rankLine(i, e.Count, e.Key, e.Title))
	}

	b.WriteString("\n")
	b.WriteString(a.styles.label.Render("Most used templates"))
	b.WriteString("\n\n")
	for i, e := range stats.TopCommands(logs, stats.DefaultLimit) {
		b.WriteString(a.rankLine(i, e.Count, e.Title, e.Template))
	}

	return b.String()
}

func (a *App) rankLine(i, count int, primary, secondary string) string {
	line := a.styles.normal.Render(fmt.Sprintf("%2d. %-4d %s", i+1, count, truncate(primary, max(a.width-14, 20))))
	if secondary != "" {
		line += "\n" + a.styles.preview.Render("         "+truncate(secondary, max(a.width-14, 20)))
	}
	return line + "\n"
}

func (a *App) renderDashboard() string {
	return a.dashboard.View() + "\n"
}
