package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"snipbox/stats"
)

func addStats(topLevel *cobra.Command, open func() (*env, error)) {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most copied commands and templates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			logs := e.usage.List()
			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				_, err := fmt.Fprintln(out, "Nothing copied yet.")
				return err
			}

			heading := color.New(color.Bold)
			heading.Fprintf(out, "Most copied commands (%d copies total)\n", len(logs))
			printRanking(out, "COMMAND", stats.TopFilled(logs, limit), func(en stats.Entry) (string, string) {
				return en.FilledCommand, en.Title
			})

			fmt.Fprintln(out)
			heading.Fprintln(out, "Most used templates")
			printRanking(out, "TITLE", stats.TopCommands(logs, limit), func(en stats.Entry) (string, string) {
				return en.Title, en.Template
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", stats.DefaultLimit, "How many entries to show per ranking.")

	topLevel.AddCommand(cmd)
}

func printRanking(out io.Writer, label string, entries []stats.Entry, cols func(stats.Entry) (string, string)) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("#", "COUNT", label, "")
	for i, e := range entries {
		a, b := cols(e)
		table.AddRow(i+1, e.Count, a, b)
	}
	fmt.Fprintln(out, table)
}
