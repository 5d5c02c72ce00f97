package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and report when another process changes the notes",
		Long: `Watch the storage slot and reload the collection whenever another jot process writes it.
The last write wins; no merge is attempted. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			watchable, ok := store.Storage().(core.Watchable)
			if !ok {
				return fmt.Errorf("adapter %s cannot be watched: %w", opts.cfg.Adapter, core.ErrUnsupported)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			changes, err := watchable.Watch(ctx, store.Key())
			if err != nil {
				return err
			}

			src := jotlifecycle.NewSource(store.Watch(ctx, core.DefaultEventBuffer))
			if err := src.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s (%d notes)\n", store.Key(), len(store.Notes()))

			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-changes:
					if !ok {
						return nil
					}
					opts.logger.Debug("slot changed externally, reloading", "key", store.Key())
					store.Reload(ctx)
				case e, ok := <-src.Events():
					if !ok {
						return nil
					}
					fmt.Fprintf(out, "%s (%d notes)\n", e.String(), len(store.Notes()))
				}
			}
		},
	}
}
