package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/badger"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

// Adapters lists the storage adapter names accepted by WithAdapter.
var Adapters = []string{"fs", "memory", "badger"}

// Init prepares the persistence medium for the data directory at uri.
// The uri is adapter-specific: a directory for "fs" and "badger", ignored for "memory".
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStorage(uri, o)
}

func initStorage(uri string, o *options) (core.Storage, error) {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	if o.storage != nil {
		return o.storage, nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	case "memory":
		return memory.New(), nil
	case "badger":
		return initBadger(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolveRoot applies the dev sandbox rules to the user path.
func resolveRoot(uri string, o *options) string {
	// Read-only runs and non-OS filesystems cannot damage real data.
	bypassSafety := o.readOnly || !o.devSafety || o.fs != nil
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	root := ResolveDataPath(uri, useTemp)

	if useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", root)
	} else if IsDevRun() && bypassSafety {
		o.logger.Debug("dev sandbox bypassed", "path", root, "read_only", o.readOnly)
	}
	return root
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(uri string, o *options) (core.Storage, error) {
	root := resolveRoot(uri, o)

	storage := fs.NewStorage(fs.Config{
		Path:         filepath.Join(root, SystemDir),
		Fs:           o.fs,
		Logger:       o.logger,
		ReadOnly:     o.readOnly,
		MustExist:    o.mustExist,
		ErrorHandler: o.errorHandler,
	})
	if err := storage.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return storage, nil
}

func initBadger(uri string, o *options) (core.Storage, error) {
	root := resolveRoot(uri, o)
	path := filepath.Join(root, SystemDir, "badger")

	_, statErr := os.Stat(path)
	if o.mustExist && statErr != nil {
		return nil, fmt.Errorf("badger directory %s: %w", path, statErr)
	}

	// Badger cannot open a missing database read-only; an empty in-memory
	// one behaves the same as an empty slot.
	inMemory := o.readOnly && os.IsNotExist(statErr)
	if inMemory {
		o.logger.Debug("badger directory missing, read-only session runs in memory", "path", path)
	}

	return badger.Open(badger.Config{
		Path:     path,
		InMemory: inMemory,
		ReadOnly: o.readOnly,
		Logger:   o.logger,
	})
}
