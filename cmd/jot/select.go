package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func newSelectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select [id]",
		Short: "Select a note and print it",
		Long: `Select a note by its ID and print its title and content.
Selection is not persisted; it only lasts for this invocation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			store.Select(args[0])
			id := store.Selected()
			if id == "" {
				return fmt.Errorf("failed to select %s: %w", args[0], core.ErrNotFound)
			}
			n, _ := store.Get(id)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "selected %s\n", id)
			fmt.Fprintf(out, "# %s\n\n%s\n", n.Title, n.Content)
			return nil
		},
	}
}
