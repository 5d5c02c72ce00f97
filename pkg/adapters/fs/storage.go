// Package fs implements core.Storage as one JSON file per slot.
//
// A slot with key K lives at {Path}/K.json. Writes go through a temp file and
// a rename, so a crash leaves either the old or the new collection on disk,
// never a torn one. The filesystem is an afero.Fs: the OS by default, an
// in-memory one in tests.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/aretw0/jot/pkg/core"
)

// SlotExt is the file extension of slot files.
const SlotExt = ".json"

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path      string
	Fs        afero.Fs // Defaults to the OS filesystem.
	Logger    *slog.Logger
	ReadOnly  bool
	MustExist bool
	Perm      os.FileMode // Defaults to 0644.

	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
}

// Storage implements core.Storage on a directory.
type Storage struct {
	Path   string
	fs     afero.Fs
	config Config

	mu            sync.RWMutex
	writes        int
	lastWrite     *time.Time
	ownWrites     map[string][]byte // last bytes written per key, to tell our writes from external ones
	watcherActive bool
}

// NewStorage creates a new filesystem-backed storage. It does no I/O.
func NewStorage(config Config) *Storage {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	return &Storage{
		Path:      config.Path,
		fs:        config.Fs,
		config:    config,
		ownWrites: make(map[string][]byte),
	}
}

// Initialize ensures the data directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := s.fs.Stat(s.Path)
		if os.IsNotExist(err) {
			if s.config.ReadOnly {
				// Nothing to read yet; every Get reports a missing slot.
				return nil
			}
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := s.fs.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *Storage) slotPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.Path, key+SlotExt), nil
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.slotPath(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", key, core.ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.slotPath(key)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.fs, path, data, s.config.Perm); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}

	now := time.Now()
	s.writes++
	s.lastWrite = &now
	s.ownWrites[key] = append([]byte(nil), data...)
	s.config.Logger.Debug("slot written", "key", key, "bytes", len(data))
	return nil
}

// Delete implements core.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.slotPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	delete(s.ownWrites, key)
	return nil
}

// Keys implements core.Lister. Temp files from interrupted writes are skipped.
func (s *Storage) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	entries, err := afero.ReadDir(s.fs, s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != SlotExt || strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		key := strings.TrimSuffix(name, SlotExt)
		if ok, _ := doublestar.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// isOwnWrite reports whether the slot currently holds exactly what we last wrote.
func (s *Storage) isOwnWrite(key string) bool {
	data, err := s.Get(context.Background(), key)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	own, ok := s.ownWrites[key]
	return ok && bytes.Equal(own, data)
}

var (
	_ core.Storage   = (*Storage)(nil)
	_ core.Lister    = (*Storage)(nil)
	_ core.Watchable = (*Storage)(nil)
)
