package platform

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/aretw0/jot/pkg/core"
)

// SystemDir is the hidden directory holding slots and databases.
const SystemDir = ".jot"

// options holds the internal configuration for a jot store.
type options struct {
	storage      core.Storage
	logger       *slog.Logger
	adapter      string
	key          string
	fs           afero.Fs
	clock        func() time.Time
	ids          core.IDGenerator
	readOnly     bool
	mustExist    bool
	forceTemp    bool
	devSafety    bool
	errorHandler func(error)
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		key:       core.DefaultStorageKey,
		devSafety: true,
	}
}

func (o *options) storeOptions() []core.StoreOption {
	return []core.StoreOption{
		core.WithKey(o.key),
		core.WithLogger(o.logger),
		core.WithClock(o.clock),
		core.WithIDGenerator(o.ids),
	}
}

// WithAdapter selects the storage adapter by name: "fs", "memory" or "badger".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithStorage injects a custom persistence medium. The adapter name is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithStorageKey sets the slot key. Defaults to core.DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly makes the adapter reject writes. Saves then fail silently and
// the session runs in memory only.
// Read-only mode also bypasses the dev sandbox, since it cannot damage data.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithFs sets the filesystem used by the "fs" adapter (e.g. afero.NewMemMapFs()).
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithClock overrides the store time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithIDGenerator overrides note id allocation.
func WithIDGenerator(g core.IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), data is redirected to a temporary directory so a dev run
// never touches real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
