package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"snipbox/assist"
	"snipbox/card"
	"snipbox/clipboard"
	"snipbox/logging"
	"snipbox/model"
	"snipbox/search"
	"snipbox/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeDelete
	modeFill
	modeDashboard
)

// Options wires the App to its stores and collaborators. Assistant may be
// nil, which disables AI assist.
type Options struct {
	Commands  *store.Commands
	Usage     *store.UsageLog
	Themes    *store.Themes
	Assistant assist.Assistant
	Clipboard clipboard.Writer
	// DefaultTheme applies when no theme has been saved.
	DefaultTheme store.Theme
	Now          func() time.Time
}

type App struct {
	commands  *store.Commands
	usage     *store.UsageLog
	themes    *store.Themes
	assistant assist.Assistant
	clip      clipboard.Writer
	now       func() time.Time

	theme  store.Theme
	styles styles

	all        []model.Command
	filtered   []model.Command
	categories []string
	category   int

	// UI state
	mode   mode
	cursor int
	width  int
	height int
	err    string
	status string

	searchInput textinput.Model

	// Card fill. cards keeps each command's values for the session.
	cards      map[string]*card.Card
	active     *card.Card
	fillNames  []string
	fillInputs []textinput.Model
	fillFocus  int

	// Form (add/edit)
	formInputs  []textinput.Model
	formFocus   int
	editingID   string
	guard       assist.Guard
	assistOpen  bool
	assistInput textinput.Model
	spinner     spinner.Model

	dashboard viewport.Model
}

func NewApp(opts Options) (*App, error) {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = store.ThemeDark
	}

	theme := opts.DefaultTheme
	if opts.Themes != nil {
		saved, ok, err := opts.Themes.Get()
		if err != nil {
			return nil, err
		}
		if ok {
			theme = saved
		}
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search title, description or tags..."
	searchInput.Focus()

	app := &App{
		commands:    opts.Commands,
		usage:       opts.Usage,
		themes:      opts.Themes,
		assistant:   opts.Assistant,
		clip:        opts.Clipboard,
		now:         opts.Now,
		theme:       theme,
		styles:      newStyles(theme),
		searchInput: searchInput,
		cards:       make(map[string]*card.Card),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		dashboard:   viewport.New(80, 20),
	}
	app.refreshCommands()

	return app, nil
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4   // account for app padding
		a.height = msg.Height - 2 // account for app padding
		a.dashboard.Width = a.width
		a.dashboard.Height = max(a.height-6, 3)
		return a, nil

	case assistResultMsg:
		return a.applySuggestion(msg)

	case spinner.TickMsg:
		if !a.guard.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		a.err = ""
		a.status = ""

		switch a.mode {
		case modeNormal:
			return a.updateNormal(msg)
		case modeAdd, modeEdit:
			return a.updateForm(msg)
		case modeDelete:
			return a.updateDelete(msg)
		case modeFill:
			return a.updateFill(msg)
		case modeDashboard:
			return a.updateDashboard(msg)
		}
	}

	return a, nil
}

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down":
		if a.cursor < len(a.filtered)-1 {
			a.cursor++
		}

	case "tab":
		a.category = (a.category + 1) % len(a.categories)
		a.filterCommands()

	case "shift+tab":
		a.category--
		if a.category < 0 {
			a.category = len(a.categories) - 1
		}
		a.filterCommands()

	case "enter":
		if len(a.filtered) > 0 {
			return a.openCard(a.filtered[a.cursor])
		}

	case "ctrl+a":
		return a, a.openForm(nil)

	case "ctrl+e":
		if len(a.filtered) > 0 {
			cmd := a.filtered[a.cursor]
			return a, a.openForm(&cmd)
		}

	case "ctrl+d":
		if len(a.filtered) > 0 {
			a.mode = modeDelete
		}

	case "ctrl+s":
		a.openDashboard()

	case "ctrl+t":
		a.toggleTheme()

	case "esc":
		a.searchInput.SetValue("")
		a.filterCommands()

	default:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		a.filterCommands()
		return a, cmd
	}

	return a, nil
}

func (a *App) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if len(a.filtered) > 0 {
			cmd := a.filtered[a.cursor]
			if err := a.commands.Delete(cmd.ID); err != nil {
				a.err = err.Error()
			} else {
				delete(a.cards, cmd.ID)
				a.status = "Deleted!"
				a.refreshCommands()
			}
		}
		a.mode = modeNormal
		return a, nil

	case "n", "N", "esc":
		a.mode = modeNormal
		return a, nil
	}

	return a, nil
}

func (a *App) toggleTheme() {
	next := a.theme.Toggle()
	if a.themes != nil {
		if err := a.themes.Set(next); err != nil {
			a.err = err.Error()
			return
		}
	}
	a.theme = next
	a.styles = newStyles(next)
	a.status = fmt.Sprintf("Theme: %s", next)
}

func (a *App) refreshCommands() {
	a.all = a.commands.List()

	selected := search.All
	if a.category < len(a.categories) {
		selected = a.categories[a.category]
	}
	a.categories = search.Categories(a.all)
	a.category = 0
	for i, c := range a.categories {
		if c == selected {
			a.category = i
		}
	}

	a.filterCommands()
}

func (a *App) filterCommands() {
	a.filtered = search.Filter(a.all, search.Query{
		Text:     a.searchInput.Value(),
		Category: a.categories[a.category],
	})

	if a.cursor >= len(a.filtered) {
		a.cursor = max(0, len(a.filtered)-1)
	}
}

// showError renders err as a notice. Nothing here is fatal; the user can
// retry the action.
func (a *App) showError(err error) {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		a.err = "That command no longer exists"
	case errors.As(err, &verr):
		a.err = strings.ToUpper(verr.Field[:1]) + verr.Field[1:] + " is required"
	case errors.Is(err, clipboard.ErrUnavailable):
		a.err = err.Error()
	case errors.Is(err, assist.ErrMalformedResponse):
		a.err = "AI assist returned an unusable draft"
	default:
		a.err = err.Error()
	}
	logging.Warn().Err(err).Msg("action failed")
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.styles.title.Render("snipbox"))
	b.WriteString(a.styles.muted.Render(" " + string(a.theme)))
	b.WriteString("\n\n")

	switch a.mode {
	case modeAdd, modeEdit:
		b.WriteString(a.renderForm())
	case modeFill:
		b.WriteString(a.renderFill())
	case modeDashboard:
		b.WriteString(a.renderDashboard())
	default:
		b.WriteString(a.searchInput.View())
		b.WriteString("\n\n")
		b.WriteString(a.renderCategories())
		b.WriteString("\n\n")
		b.WriteString(a.renderList(max((a.height-12)/3, 3)))
	}

	if a.mode == modeDelete && len(a.filtered) > 0 {
		cmd := a.filtered[a.cursor]
		b.WriteString("\n")
		b.WriteString(a.styles.warning.Render(fmt.Sprintf("Delete '%s'? (y/n)", cmd.Title)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.err != "" {
		b.WriteString(a.styles.err.Render("Error: " + a.err))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(a.styles.success.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.renderHelp())

	return a.styles.app.Render(b.String())
}

func (a *App) renderCategories() string {
	parts := make([]string, len(a.categories))
	for i, c := range a.categories {
		if i == a.category {
			parts[i] = a.styles.tabOn.Render(c)
		} else {
			parts[i] = a.styles.tab.Render(c)
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) renderList(height int) string {
	if len(a.filtered) == 0 {
		return a.styles.muted.Render("No commands found. Press ctrl+a to add one.\n")
	}

	var lines []string
	start := 0
	if a.cursor >= height {
		start = a.cursor - height + 1
	}
	end := min(start+height, len(a.filtered))

	for i := start; i < end; i++ {
		cmd := a.filtered[i]
		prefix := "  "
		style := a.styles.normal
		if i == a.cursor {
			prefix = "▸ "
			style = a.styles.selected
		}

		name := style.Render(prefix + cmd.Title)
		if cmd.Category != "" {
			name += " " + a.styles.category.Render("["+cmd.Category+"]")
		}
		if len(cmd.Tags) > 0 {
			name += " " + a.styles.muted.Render("#"+strings.Join(cmd.Tags, " #"))
		}

		template := cmd.Template
		if c, ok := a.cards[cmd.ID]; ok {
			template = c.Resolved()
		}
		preview := a.styles.preview.Render("  " + truncate(template, a.width-10))
		lines = append(lines, name, preview)
	}

	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderHelp() string {
	var keys []struct{ key, desc string }
	switch a.mode {
	case modeNormal:
		keys = []struct{ key, desc string }{
			{"enter", "fill & copy"},
			{"tab", "category"},
			{"ctrl+a", "add"},
			{"ctrl+e", "edit"},
			{"ctrl+d", "delete"},
			{"ctrl+s", "stats"},
			{"ctrl+t", "theme"},
			{"ctrl+c", "quit"},
		}
	case modeFill:
		keys = []struct{ key, desc string }{
			{"tab", "next"},
			{"enter", "copy"},
			{"esc", "back"},
		}
	case modeDashboard:
		keys = []struct{ key, desc string }{
			{"↑/↓", "scroll"},
			{"esc", "back"},
		}
	default:
		return ""
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, a.styles.helpKey.Render(k.key)+" "+a.styles.help.Render(k.desc))
	}

	return strings.Join(parts, "  ")
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
