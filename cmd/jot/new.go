package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Long:  `Create a note at the top of the list and select it. Title and content are optional.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			n := store.Create(ctx)
			if title != "" || content != "" {
				n, err = store.Edit(ctx, n.ID, func(n core.Note, now time.Time) core.Note {
					if title != "" {
						n = n.WithTitle(title, now)
					}
					if content != "" {
						n = n.WithContent(content, now)
					}
					return n
				})
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %s\n", n.ID)
			fmt.Fprintf(out, "selected %s\n", store.Selected())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	return cmd
}
