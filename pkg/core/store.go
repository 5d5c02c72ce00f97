package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultEventBuffer is the channel size used by Watch when none is given.
const DefaultEventBuffer = 100

// Store owns the note collection, the current selection and the search text.
// Every mutation goes through its methods and is persisted to the storage
// slot before observers are notified.
//
// Persistence is best-effort: read failures load as an empty collection and
// write failures are logged and kept in State, never returned.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	key     string
	logger  *slog.Logger
	now     func() time.Time
	ids     IDGenerator

	notes    Notes
	selected string
	search   string

	observers    []observer
	nextObserver int

	saves         int
	lastSaveError error
	lastSaveAt    *time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the storage slot key. Defaults to DefaultStorageKey.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for new notes and edits.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides id allocation.
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// NewStore creates a Store on top of storage. The collection starts empty;
// call Open to load the persisted slot.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultStorageKey,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		ids:     NewULIDGenerator(),
		notes:   Notes{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage slot this store persists to.
func (s *Store) Key() string {
	return s.key
}

// Storage returns the persistence medium, e.g. to probe for Lister or Watchable.
func (s *Store) Storage() Storage {
	return s.storage
}

// Close releases the storage if it holds resources (e.g. a database handle).
func (s *Store) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open loads the persisted collection into memory.
func (s *Store) Open(ctx context.Context) {
	notes := s.Load(ctx)

	s.mu.Lock()
	s.notes = notes
	s.selected = ""
	s.mu.Unlock()
}

// Load returns the persisted collection. A missing, unreadable or corrupt
// slot yields an empty collection.
func (s *Store) Load(ctx context.Context) Notes {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.logger.Debug("storage unreadable, starting empty", "key", s.key, "error", err)
		}
		return Notes{}
	}

	notes, err := Decode(data)
	if err != nil {
		s.logger.Debug("storage corrupt, starting empty", "key", s.key, "error", err)
		return Notes{}
	}
	return notes
}

// Save writes the whole collection to the slot, replacing the previous value.
// Failures are swallowed; see State for the last error.
func (s *Store) Save(ctx context.Context, notes Notes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(ctx, notes)
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, notes Notes) {
	s.saves++
	data, err := Encode(notes)
	if err == nil {
		err = s.storage.Set(ctx, s.key, data)
	}
	if err != nil {
		s.lastSaveError = err
		s.logger.Warn("failed to persist notes, keeping in-memory state", "key", s.key, "count", len(notes), "error", err)
		return
	}
	now := s.now()
	s.lastSaveError = nil
	s.lastSaveAt = &now
}

// Create allocates an empty note, prepends it and selects it.
func (s *Store) Create(ctx context.Context) Note {
	now := s.now()
	n := Note{
		ID:        s.ids.NewID(now),
		UpdatedAt: Millis(now),
	}

	s.mu.Lock()
	s.notes = append(Notes{n}, s.notes...)
	s.selected = n.ID
	s.persist(ctx, s.notes)
	s.mu.Unlock()

	s.notify(Event{Type: EventCreate, ID: n.ID, Timestamp: n.UpdatedAt})
	return n
}

// Update replaces the entry with note.ID. The caller bumps UpdatedAt.
// Unknown ids are ignored.
func (s *Store) Update(ctx context.Context, note Note) {
	s.mu.Lock()
	i := s.notes.Index(note.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next := s.notes.Clone()
	next[i] = note
	s.notes = next
	s.persist(ctx, s.notes)
	s.mu.Unlock()

	s.notify(Event{Type: EventUpdate, ID: note.ID, Timestamp: Millis(s.now())})
}

// Edit applies fn to the note with the given id using the store clock and
// stores the result through Update.
func (s *Store) Edit(ctx context.Context, id string, fn func(n Note, now time.Time) Note) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyID
	}
	current, ok := s.Get(id)
	if !ok {
		return Note{}, ErrNotFound
	}
	edited := fn(current, s.now())
	edited.ID = current.ID
	s.Update(ctx, edited)
	return edited, nil
}

// Delete removes the note with the given id. Missing ids are ignored.
// Deleting the selected note clears the selection; picking the next one is
// up to the caller.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	i := s.notes.Index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next := make(Notes, 0, len(s.notes)-1)
	next = append(next, s.notes[:i]...)
	next = append(next, s.notes[i+1:]...)
	s.notes = next
	if s.selected == id {
		s.selected = ""
	}
	s.persist(ctx, s.notes)
	s.mu.Unlock()

	s.notify(Event{Type: EventDelete, ID: id, Timestamp: Millis(s.now())})
}

// Reload replaces the in-memory collection with the persisted one, e.g. after
// the slot changed outside this process.
func (s *Store) Reload(ctx context.Context) {
	notes := s.Load(ctx)

	s.mu.Lock()
	s.notes = notes
	if s.notes.Index(s.selected) < 0 {
		s.selected = ""
	}
	s.mu.Unlock()

	s.notify(Event{Type: EventReload, Timestamp: Millis(s.now())})
}

// Notes returns a copy of the collection in storage order.
func (s *Store) Notes() Notes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Clone()
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.notes.Index(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// Select marks id as the selected note. Unknown ids clear the selection.
func (s *Store) Select(id string) {
	s.mu.Lock()
	if s.notes.Index(id) < 0 {
		id = ""
	}
	changed := s.selected != id
	s.selected = id
	s.mu.Unlock()

	if changed {
		s.notify(Event{Type: EventSelect, ID: id, Timestamp: Millis(s.now())})
	}
}

// Selected returns the selected note id, or "" when nothing is selected.
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetSearch sets the text used by Visible.
func (s *Store) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
}

// Search returns the current search text.
func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// Visible is the display projection of the collection for the current search text.
func (s *Store) Visible() Notes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Query(s.notes, s.search)
}

// Subscribe registers fn to be called after every mutation.
// Observers run synchronously, in registration order, outside the store lock.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Watch exposes store events as a channel closed when ctx is done.
// Events are dropped when the reader falls more than buffer events behind.
func (s *Store) Watch(ctx context.Context, buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	out := make(chan Event, buffer)

	var mu sync.Mutex
	closed := false
	unsubscribe := s.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- e:
		default:
			s.logger.Warn("event buffer full, dropping event", "event", e.String())
		}
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out
}

func (s *Store) notify(e Event) {
	s.mu.RLock()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o.fn(e)
	}
}
