package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Long: `Delete a note by its ID. Unknown IDs are ignored.
The first remaining note in display order becomes the selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id := args[0]
			_, existed := store.Get(id)
			store.Delete(cmd.Context(), id)

			// Selection is per process and starts empty.
			if visible := store.Visible(); len(visible) > 0 {
				store.Select(visible[0].ID)
			}

			out := cmd.OutOrStdout()
			if existed {
				fmt.Fprintf(out, "deleted %s\n", id)
			} else {
				fmt.Fprintf(out, "no note %s\n", id)
			}
			if sel := store.Selected(); sel != "" {
				fmt.Fprintf(out, "selected %s\n", sel)
			} else {
				fmt.Fprintln(out, "selected none")
			}
			return nil
		},
	}
}
