package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Export notes as Markdown files",
		Long:  `Write each note to <dir>/<id>.md with a YAML frontmatter header. --search limits the export to matching notes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			store.SetSearch(search)
			paths, err := export.Dir(afero.NewOsFs(), args[0], store.Visible())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintf(out, "exported %d notes\n", len(paths))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only export notes matching the text")
	return cmd
}
