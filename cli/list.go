package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"snipbox/search"
)

func addList(topLevel *cobra.Command, open func() (*env, error)) {
	var (
		q      search.Query
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored commands, newest first.",
		Example: `
snipbox list
snipbox list --category Git --query branch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			cmds := search.Filter(e.commands.List(), q)
			out := cmd.OutOrStdout()

			if asJSON {
				b, err := json.MarshalIndent(cmds, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}

			if len(cmds) == 0 {
				_, err := fmt.Fprintln(out, "No commands found.")
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("ID", "TITLE", "CATEGORY", "TAGS", "TEMPLATE")
			for _, c := range cmds {
				table.AddRow(shortID(c.ID), c.Title, c.Category, strings.Join(c.Tags, ","), c.Template)
			}
			_, err = fmt.Fprintln(out, table)
			return err
		},
	}
	cmd.Flags().StringVarP(&q.Text, "query", "q", "", "Case-insensitive text to find in title, description or tags.")
	cmd.Flags().StringVarP(&q.Category, "category", "c", search.All, "Only show this category.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON.")

	topLevel.AddCommand(cmd)
}
