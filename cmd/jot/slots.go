package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func newSlotsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "slots [pattern]",
		Short: "List storage slots",
		Long: `List the storage slots held by the adapter, optionally filtered by a glob pattern (e.g. "notes_app_*").
Old slots are never migrated; this shows what is left behind after a key change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}

			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			lister, ok := store.Storage().(core.Lister)
			if !ok {
				return fmt.Errorf("adapter %s cannot list slots: %w", opts.cfg.Adapter, core.ErrUnsupported)
			}
			keys, err := lister.Keys(cmd.Context(), pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				marker := " "
				if k == store.Key() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, k)
			}
			return nil
		},
	}
}
