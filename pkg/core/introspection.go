package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key           string     `json:"key"`
	NoteCount     int        `json:"note_count"`
	Selected      string     `json:"selected,omitempty"`
	Search        string     `json:"search,omitempty"`
	Observers     int        `json:"observers"`
	Saves         int        `json:"saves"`
	LastSaveAt    *time.Time `json:"last_save_at,omitempty"`
	LastSaveError string     `json:"last_save_error,omitempty"`
	StorageType   string     `json:"storage_type"`
	Storage       any        `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Key:         s.key,
		NoteCount:   len(s.notes),
		Selected:    s.selected,
		Search:      s.search,
		Observers:   len(s.observers),
		Saves:       s.saves,
		LastSaveAt:  s.lastSaveAt,
		StorageType: "storage",
	}
	if s.lastSaveError != nil {
		state.LastSaveError = s.lastSaveError.Error()
	}
	if comp, ok := s.storage.(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}
	if in, ok := s.storage.(introspection.Introspectable); ok {
		state.Storage = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
