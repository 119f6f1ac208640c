package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"snipbox/store"
)

func addDelete(topLevel *cobra.Command, open func() (*env, error)) {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a command. Deleting an unknown ID does nothing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			c, err := e.findCommand(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := e.commands.Delete(c.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(c.ID), c.Title)
			return err
		},
	}

	topLevel.AddCommand(cmd)
}
