package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"snipbox/store"
)

func addTheme(topLevel *cobra.Command, open func() (*env, error)) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the UI theme.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				theme, ok, err := e.themes.Get()
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(out, "system")
					return err
				}
				_, err = fmt.Fprintln(out, theme)
				return err
			}

			theme, err := store.ParseTheme(args[0])
			if err != nil {
				return err
			}
			return e.themes.Set(theme)
		},
	}

	topLevel.AddCommand(cmd)
}
