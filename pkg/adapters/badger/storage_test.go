package badger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/badger"
	"github.com/aretw0/jot/pkg/core"
)

func openInMemory(t *testing.T) *badger.Storage {
	t.Helper()
	s, err := badger.Open(badger.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_GetSetDelete(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	_, err := s.Get(ctx, core.DefaultStorageKey)
	assert.ErrorIs(t, err, core.ErrSlotNotFound)

	require.NoError(t, s.Set(ctx, core.DefaultStorageKey, []byte(`[]`)))
	data, err := s.Get(ctx, core.DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, s.Delete(ctx, core.DefaultStorageKey))
	_, err = s.Get(ctx, core.DefaultStorageKey)
	assert.ErrorIs(t, err, core.ErrSlotNotFound)

	assert.Error(t, s.Set(ctx, "", []byte("x")))
}

func TestStorage_Keys(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	for _, k := range []string{"notes_app_notes_v2", "notes_app_notes_v1", "other"} {
		require.NoError(t, s.Set(ctx, k, []byte(`[]`)))
	}

	keys, err := s.Keys(ctx, "notes_*")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes_app_notes_v1", "notes_app_notes_v2"}, keys)

	keys, err = s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := badger.Open(badger.Config{Path: dir})
	require.NoError(t, err)
	store := core.NewStore(s)
	store.Open(ctx)
	n := store.Create(ctx)
	require.NoError(t, s.Close())

	s, err = badger.Open(badger.Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	reopened := core.NewStore(s)
	reopened.Open(ctx)
	_, ok := reopened.Get(n.ID)
	assert.True(t, ok)
	assert.Equal(t, "badger", reopened.State().(core.StoreState).StorageType)
}
