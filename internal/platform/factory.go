package platform

import (
	"context"

	"github.com/aretw0/jot/pkg/core"
)

// New opens the persistence medium and loads the note collection.
//
//	store, err := jot.New("./notes", jot.WithAdapter("badger"))
//
// The uri argument is adapter-specific (a data directory for "fs" and "badger").
func New(uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := initStorage(uri, o)
	if err != nil {
		return nil, err
	}

	store := core.NewStore(storage, o.storeOptions()...)
	store.Open(context.Background())
	return store, nil
}
