// Package memory implements core.Storage in process memory.
//
// It is the "in-memory only" medium: nothing survives the process. Tests use
// FailWrites to simulate a full or broken persistence medium.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jot/pkg/core"
)

// Storage is a map of slots guarded by a mutex.
type Storage struct {
	mu       sync.RWMutex
	slots    map[string][]byte
	readOnly bool
	writeErr error
	writes   int
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{slots: make(map[string][]byte)}
}

// NewReadOnly creates a storage that rejects writes with core.ErrReadOnly.
func NewReadOnly(seed map[string][]byte) *Storage {
	s := New()
	for k, v := range seed {
		s.slots[k] = append([]byte(nil), v...)
	}
	s.readOnly = true
	return s
}

// FailWrites makes every following Set return err. Passing nil restores writes.
func (s *Storage) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Writes returns how many successful Set calls were made.
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, core.ErrSlotNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	s.slots[key] = append([]byte(nil), data...)
	s.writes++
	return nil
}

// Delete implements core.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	delete(s.slots, key)
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

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.slots {
		if ok, _ := doublestar.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var (
	_ core.Storage = (*Storage)(nil)
	_ core.Lister  = (*Storage)(nil)
)
