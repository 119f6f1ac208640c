// Package cli defines the snipbox command tree. With no subcommand the
// interactive UI starts.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"snipbox/assist"
	"snipbox/clipboard"
	"snipbox/config"
	"snipbox/db"
	"snipbox/logging"
	"snipbox/model"
	"snipbox/store"
	"snipbox/ui"
)

// deps are the collaborators that tests replace.
type deps struct {
	clipboard clipboard.Writer
	assistant func(cfg *config.Config) (assist.Assistant, error)
}

func defaultDeps() deps {
	return deps{
		clipboard: clipboard.System{},
		assistant: func(cfg *config.Config) (assist.Assistant, error) {
			if cfg.AI.APIKey == "" {
				return nil, nil
			}
			return assist.NewOpenAI(assist.Config{
				APIKey:  cfg.AI.APIKey,
				Model:   cfg.AI.Model,
				BaseURL: cfg.AI.BaseURL,
				Retries: cfg.AI.Retries,
			})
		},
	}
}

func New() *cobra.Command {
	return newRoot(defaultDeps())
}

func newRoot(d deps) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "snipbox",
		Short:         "Store shell command templates, fill in their {{variables}} and copy them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(configFile, d)
			if err != nil {
				return err
			}
			defer e.Close()
			return e.runUI()
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default .snipbox.yaml in . or $HOME).")

	open := func() (*env, error) { return openEnv(configFile, d) }
	addList(cmd, open)
	addAdd(cmd, open)
	addCopy(cmd, open)
	addDelete(cmd, open)
	addStats(cmd, open)
	addTheme(cmd, open)
	return cmd
}

// env is everything a subcommand needs, opened from configuration.
type env struct {
	cfg       *config.Config
	backend   db.Store
	commands  *store.Commands
	usage     *store.UsageLog
	themes    *store.Themes
	clipboard clipboard.Writer
	assistant assist.Assistant
	logFile   *os.File
}

func openEnv(configFile string, d deps) (*env, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, clipboard: d.clipboard}
	if cfg.Backend != config.BackendMemory {
		f, err := logging.OpenFile(cfg.LogPath())
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		e.logFile = f
		logging.Init(logging.Config{Level: logging.ParseLevel(cfg.LogLevel), Output: f})
	}

	if e.backend, err = db.Open(cfg); err != nil {
		e.Close()
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	if e.commands, err = store.NewCommands(e.backend); err != nil {
		e.Close()
		return nil, err
	}
	if e.usage, err = store.NewUsageLog(e.backend); err != nil {
		e.Close()
		return nil, err
	}
	e.themes = store.NewThemes(e.backend)

	if e.assistant, err = d.assistant(cfg); err != nil {
		logging.Warn().Err(err).Msg("assist disabled")
	}

	logging.Debug().Str("backend", cfg.Backend).Str("data_dir", cfg.DataDir).Msg("opened")
	return e, nil
}

func (e *env) Close() {
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			logging.Error().Err(err).Msg("close backend")
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) runUI() error {
	theme := store.ThemeLight
	if lipgloss.HasDarkBackground() {
		theme = store.ThemeDark
	}

	app, err := ui.NewApp(ui.Options{
		Commands:     e.commands,
		Usage:        e.usage,
		Themes:       e.themes,
		Assistant:    e.assistant,
		Clipboard:    e.clipboard,
		DefaultTheme: theme,
	})
	if err != nil {
		return fmt.Errorf("creating app: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

// findCommand resolves an exact ID or a unique ID prefix.
func (e *env) findCommand(ref string) (model.Command, error) {
	if c, err := e.commands.Get(ref); err == nil {
		return c, nil
	}

	var found []model.Command
	for _, c := range e.commands.List() {
		if len(ref) >= 4 && len(c.ID) > len(ref) && c.ID[:len(ref)] == ref {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return model.Command{}, fmt.Errorf("command %q: %w", ref, store.ErrNotFound)
	case 1:
		return found[0], nil
	}
	return model.Command{}, errors.New("ambiguous id prefix " + ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
