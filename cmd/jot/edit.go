package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a note's title or content",
		Long:  `Replace the title and/or content of a note. Only the given flags are applied; the note moves to the top of the list.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setTitle := cmd.Flags().Changed("title")
			setContent := cmd.Flags().Changed("content")
			if !setTitle && !setContent {
				return errors.New("nothing to edit: pass --title and/or --content")
			}

			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Edit(cmd.Context(), args[0], func(n core.Note, now time.Time) core.Note {
				if setTitle {
					n = n.WithTitle(title, now)
				}
				if setContent {
					n = n.WithContent(content, now)
				}
				return n
			})
			if err != nil {
				return fmt.Errorf("failed to edit %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	return cmd
}
