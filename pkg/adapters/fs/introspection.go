package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	Filesystem    string     `json:"filesystem"`
	ReadOnly      bool       `json:"read_only"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StorageState{
		Path:          s.Path,
		Filesystem:    s.fs.Name(),
		ReadOnly:      s.config.ReadOnly,
		Writes:        s.writes,
		LastWrite:     s.lastWrite,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
