package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"snipbox/card"
	"snipbox/placeholder"
)

func addCopy(topLevel *cobra.Command, open func() (*env, error)) {
	var sets []string

	cmd := &cobra.Command{
		Use:   "copy ID",
		Short: "Fill in a command's variables and copy it to the clipboard.",
		Example: `
snipbox copy 3f2a9c1e --set path=/tmp --set size=100M
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			c, err := e.findCommand(args[0])
			if err != nil {
				return err
			}

			cd := card.New(c)
			for _, s := range sets {
				name, value, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("--set %q: want name=value", s)
				}
				cd.Set(strings.TrimSpace(name), value)
			}

			entry, err := cd.Copy(e.clipboard, e.usage, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, entry.FilledCommand)
			var missing []string
			for _, name := range cd.Variables() {
				if cd.Value(name) == "" {
					missing = append(missing, placeholder.Marker(name))
				}
			}
			if len(missing) > 0 {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "unfilled: %s\n", strings.Join(missing, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Variable value as name=value. Repeatable.")

	topLevel.AddCommand(cmd)
}
