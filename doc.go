// Package jot is the composition root for the jot note store.
//
// It connects the note store (pkg/core) with a persistence medium chosen by
// name or injected directly, using the same ports-and-adapters split as the
// rest of the module.
//
// The store keeps an ordered collection of short text notes, a current
// selection and a search string. Every mutation rewrites the whole
// collection under a single storage slot as a JSON array. Persistence is
// best-effort: a missing or corrupt slot loads as an empty collection and a
// failed write leaves the in-memory state intact.
//
// Adapters:
//
//   - "fs": one file per slot under <dir>/.jot, written atomically (default).
//   - "memory": process-local map, nothing survives a restart.
//   - "badger": embedded key-value store under <dir>/.jot/badger.
//
// Usage:
//
//	store, err := jot.New("./notes", jot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	n := store.Create(ctx)
//	store.Edit(ctx, n.ID, func(n jot.Note, now time.Time) jot.Note {
//		return n.WithTitle("Groceries", now)
//	})
//	for _, n := range store.Visible() {
//		fmt.Println(n.ID, n.Title)
//	}
package jot
