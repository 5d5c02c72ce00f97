package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
)

func newMemStorage(t *testing.T) (*fs.Storage, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	s := fs.NewStorage(fs.Config{Path: "/notes", Fs: mem})
	require.NoError(t, s.Initialize(context.Background()))
	return s, mem
}

func TestStorage_GetSetDelete(t *testing.T) {
	s, mem := newMemStorage(t)
	ctx := context.Background()

	_, err := s.Get(ctx, core.DefaultStorageKey)
	assert.ErrorIs(t, err, core.ErrSlotNotFound)

	require.NoError(t, s.Set(ctx, core.DefaultStorageKey, []byte(`[]`)))
	got, err := s.Get(ctx, core.DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	raw, err := afero.ReadFile(mem, "/notes/notes_app_notes_v1.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	require.NoError(t, s.Delete(ctx, core.DefaultStorageKey))
	require.NoError(t, s.Delete(ctx, core.DefaultStorageKey), "deleting twice is fine")
	_, err = s.Get(ctx, core.DefaultStorageKey)
	assert.ErrorIs(t, err, core.ErrSlotNotFound)
}

func TestStorage_InvalidKeys(t *testing.T) {
	s, _ := newMemStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", `a\b`, "nested/key"} {
		assert.Error(t, s.Set(ctx, key, []byte("x")), "key %q", key)
		_, err := s.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestStorage_ReadOnly(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/notes/notes_app_notes_v1.json", []byte(`[{"id":"a"}]`), 0644))

	s := fs.NewStorage(fs.Config{Path: "/notes", Fs: mem, ReadOnly: true})
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	data, err := s.Get(ctx, core.DefaultStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(data))

	err = s.Set(ctx, core.DefaultStorageKey, []byte(`[]`))
	assert.True(t, errors.Is(err, core.ErrReadOnly))
	assert.ErrorIs(t, s.Delete(ctx, core.DefaultStorageKey), core.ErrReadOnly)

	t.Run("Missing Directory Is Not An Error", func(t *testing.T) {
		ro := fs.NewStorage(fs.Config{Path: "/nowhere", Fs: afero.NewMemMapFs(), ReadOnly: true})
		require.NoError(t, ro.Initialize(ctx))
		_, err := ro.Get(ctx, core.DefaultStorageKey)
		assert.ErrorIs(t, err, core.ErrSlotNotFound)
	})
}

func TestStorage_MustExist(t *testing.T) {
	s := fs.NewStorage(fs.Config{Path: "/missing", Fs: afero.NewMemMapFs(), MustExist: true})
	err := s.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestStorage_Keys(t *testing.T) {
	s, mem := newMemStorage(t)
	ctx := context.Background()

	for _, k := range []string{"notes_app_notes_v1", "notes_app_notes_v2", "settings"} {
		require.NoError(t, s.Set(ctx, k, []byte(`[]`)))
	}
	require.NoError(t, afero.WriteFile(mem, "/notes/README.md", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/notes/"+fs.TempFilePrefix+"123.json", []byte("x"), 0644))

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes_app_notes_v1", "notes_app_notes_v2", "settings"}, keys)

	keys, err = s.Keys(ctx, "notes_app_notes_v*")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes_app_notes_v1", "notes_app_notes_v2"}, keys)

	_, err = s.Keys(ctx, "[")
	assert.Error(t, err)
}

func TestStorage_State(t *testing.T) {
	s, _ := newMemStorage(t)
	require.NoError(t, s.Set(context.Background(), "k", []byte(`[]`)))

	state := s.State().(fs.StorageState)
	assert.Equal(t, "/notes", state.Path)
	assert.Equal(t, 1, state.Writes)
	assert.NotNil(t, state.LastWrite)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "fs", s.ComponentType())
}

func TestStorage_BacksStore(t *testing.T) {
	s, _ := newMemStorage(t)
	ctx := context.Background()

	store := core.NewStore(s)
	store.Open(ctx)
	n := store.Create(ctx)
	store.Update(ctx, n.WithTitle("persisted", time.Now()))

	reopened := core.NewStore(s)
	reopened.Open(ctx)
	got, ok := reopened.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "persisted", got.Title)

	state := store.State().(core.StoreState)
	assert.Equal(t, "fs", state.StorageType)
}

func TestStorage_Watch(t *testing.T) {
	dir := t.TempDir()
	s := fs.NewStorage(fs.Config{Path: dir})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Initialize(ctx))

	changes, err := s.Watch(ctx, core.DefaultStorageKey)
	require.NoError(t, err)

	// Our own writes are not reported.
	require.NoError(t, s.Set(ctx, core.DefaultStorageKey, []byte(`[]`)))
	select {
	case <-changes:
		t.Fatal("own write reported as external change")
	case <-time.After(4 * fs.DebounceInterval):
	}

	// Another process replaces the slot.
	other := fs.NewStorage(fs.Config{Path: dir})
	require.NoError(t, other.Set(ctx, core.DefaultStorageKey, []byte(`[{"id":"x"}]`)))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}

	cancel()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-changes:
			if !open {
				return
			}
		case <-timeout:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestStorage_WatchNeedsOSFilesystem(t *testing.T) {
	s, _ := newMemStorage(t)
	_, err := s.Watch(context.Background(), core.DefaultStorageKey)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestStorage_OSPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "notes")
	s := fs.NewStorage(fs.Config{Path: dir, Perm: 0600})
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Set(ctx, "k", []byte(`[]`)))

	info, err := os.Stat(filepath.Join(dir, "k.json"))
	require.NoError(t, err)
	t.Logf("File permissions: %v", info.Mode())
}
