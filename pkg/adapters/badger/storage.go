// Package badger implements core.Storage on an embedded Badger database.
//
// Slots are stored under a key prefix so the database can be shared with
// other data. Every Set is its own transaction.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgraph-io/badger/v4"

	"github.com/aretw0/jot/pkg/core"
)

// KeyPrefix namespaces slot keys inside the database.
const KeyPrefix = "jot/"

// Config holds the configuration for the Badger storage.
type Config struct {
	Path     string // Ignored when InMemory is set.
	InMemory bool
	ReadOnly bool
	Logger   *slog.Logger
}

// Storage implements core.Storage on a Badger DB.
type Storage struct {
	db     *badger.DB
	config Config
}

// Open opens (or creates) the database described by config.
func Open(config Config) (*Storage, error) {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	opts := badger.DefaultOptions(config.Path).
		WithLogger(nil).
		WithReadOnly(config.ReadOnly && !config.InMemory)
	if config.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", config.Path, err)
	}
	config.Logger.Debug("badger storage opened", "path", config.Path, "in_memory", config.InMemory)

	return &Storage{db: db, config: config}, nil
}

// Close releases the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeyPrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
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
	if key == "" {
		return fmt.Errorf("invalid slot key %q", key)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete implements core.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(KeyPrefix + key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Keys implements core.Lister.
func (s *Storage) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(KeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := strings.TrimPrefix(string(it.Item().Key()), KeyPrefix)
			if ok, _ := doublestar.Match(pattern, key); ok {
				keys = append(keys, key)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "badger"
}

var (
	_ core.Storage = (*Storage)(nil)
	_ core.Lister  = (*Storage)(nil)
)
