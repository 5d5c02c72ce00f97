package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// rootOptions holds the persistent flags and the resolved configuration
// shared by every subcommand.
type rootOptions struct {
	verbose  bool
	dir      string
	adapter  string
	key      string
	readOnly bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jot",
		Short: "A small local note store",
		Long: `jot keeps short titled notes in a single storage slot.
Notes are listed newest first and can be filtered by a case-insensitive search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&opts.dir, "dir", "d", "", "Data directory (default: nearest directory with .jot or jot.yaml, else the working directory)")
	flags.StringVar(&opts.adapter, "adapter", "", "Storage adapter: fs, memory or badger")
	flags.StringVar(&opts.key, "key", "", "Storage slot key")
	flags.BoolVar(&opts.readOnly, "read-only", false, "Never write to storage")

	cmd.AddCommand(newNewCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newSelectCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newSlotsCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fatal("Error", err)
	}
}

// setup resolves configuration (file, env, then flags) and installs the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	dir := o.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
		if root, err := platform.FindRoot(wd); err == nil {
			dir = root
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.DataDir = o.dir
	}
	if flags.Changed("adapter") {
		cfg.Adapter = o.adapter
	}
	if flags.Changed("key") {
		cfg.StorageKey = o.key
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = o.readOnly
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)

	o.cfg = cfg
	return nil
}

// openStore opens the configured storage and loads the collection.
// Callers must Close the store.
func (o *rootOptions) openStore() (*core.Store, error) {
	store, err := platform.New(o.cfg.DataDir,
		platform.WithAdapter(o.cfg.Adapter),
		platform.WithStorageKey(o.cfg.StorageKey),
		platform.WithReadOnly(o.cfg.ReadOnly),
		platform.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}
