package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/export"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		showJSON     bool
		showMarkdown bool
	)

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a note",
		Long:  `Show a note by its ID. Outputs the raw content by default, a JSON object with --json, or Markdown with frontmatter with --markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("failed to show %s: %w", args[0], core.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			switch {
			case showJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(n); err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
			case showMarkdown:
				data, err := export.Markdown(n)
				if err != nil {
					return err
				}
				_, _ = out.Write(data)
			default:
				fmt.Fprint(out, n.Content)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&showMarkdown, "markdown", false, "Output as Markdown with frontmatter")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	return cmd
}
