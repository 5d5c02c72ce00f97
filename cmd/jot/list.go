package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		search   string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Long:  `List notes ordered by last update. --search keeps notes whose title or content contains the text, ignoring case.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			store.SetSearch(search)
			notes := store.Visible()

			out := cmd.OutOrStdout()
			if listJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(notes); err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
				return nil
			}

			for _, n := range notes {
				title := n.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(out, "%s  %s  %s\n", n.ID, n.Time().Format("2006-01-02 15:04"), title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title or content")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
