package jot

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// Version is the library version. Overridden at build time with
// -ldflags "-X github.com/aretw0/jot.Version=...".
var Version = "0.1.0"

// --- Types ---

// Note is a public alias for core.Note.
type Note = core.Note

// Notes is a public alias for core.Notes.
type Notes = core.Notes

// Store is a public alias for core.Store.
type Store = core.Store

// Event is a public alias for core.Event.
type Event = core.Event

// StoreState is the value returned by Store.State.
type StoreState = core.StoreState

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "memory" or "badger").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom persistence medium.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithStorageKey sets the slot key the collection is persisted under.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly rejects writes at the adapter. The session keeps working in memory.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithInMemory is shorthand for WithAdapter("memory").
func WithInMemory() Option {
	return platform.WithAdapter("memory")
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithFs sets the filesystem used by the "fs" adapter.
func WithFs(fsys afero.Fs) Option {
	return platform.WithFs(fsys)
}

// WithClock overrides the store time source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator overrides note id allocation.
func WithIDGenerator(g core.IDGenerator) Option {
	return platform.WithIDGenerator(g)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the dev-run sandbox. Enabled by default.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the persistence medium under path and loads the collection.
func New(path string, opts ...Option) (*core.Store, error) {
	return platform.New(path, opts...)
}

// Init prepares the persistence medium without loading a store.
func Init(path string, opts ...Option) (core.Storage, error) {
	return platform.Init(path, opts...)
}

// --- Pure helpers ---

// Query sorts notes by recency and filters them by searchText.
func Query(notes Notes, searchText string) Notes {
	return core.Query(notes, searchText)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards from startDir for a .jot directory or jot.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
