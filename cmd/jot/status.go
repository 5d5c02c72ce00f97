package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/config"
)

type statusReport struct {
	Version string        `json:"version"`
	Config  config.Config `json:"config"`
	Store   any           `json:"store"`
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print configuration and store state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(statusReport{
				Version: jot.Version,
				Config:  opts.cfg,
				Store:   store.State(),
			}); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			return nil
		},
	}
}
