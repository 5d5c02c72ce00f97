package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/badger"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("FS Creates System Directory", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "notes")

		storage, err := platform.Init(dataDir, platform.WithForceTemp(true))
		require.NoError(t, err)

		fsStorage, ok := storage.(*fs.Storage)
		require.True(t, ok, "expected fs storage")
		assert.Equal(t, filepath.Join(dataDir, platform.SystemDir), fsStorage.Path)

		info, err := os.Stat(fsStorage.Path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MustExist Fails if Directory Missing", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "missing")

		_, err := platform.Init(dataDir, platform.WithMustExist(true), platform.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("Memory Adapter", func(t *testing.T) {
		storage, err := platform.Init("", platform.WithAdapter("memory"))
		require.NoError(t, err)
		assert.IsType(t, &memory.Storage{}, storage)
	})

	t.Run("Badger Adapter", func(t *testing.T) {
		storage, err := platform.Init(t.TempDir(), platform.WithAdapter("badger"))
		require.NoError(t, err)
		b, ok := storage.(*badger.Storage)
		require.True(t, ok)
		assert.NoError(t, b.Close())
	})

	t.Run("Badger ReadOnly Without Database", func(t *testing.T) {
		storage, err := platform.Init(t.TempDir(), platform.WithAdapter("badger"), platform.WithReadOnly(true))
		require.NoError(t, err)
		b := storage.(*badger.Storage)
		defer b.Close()

		assert.ErrorIs(t, b.Set(context.Background(), "k", []byte("v")), core.ErrReadOnly)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown adapter")
	})

	t.Run("Injected Storage Wins", func(t *testing.T) {
		injected := memory.New()
		storage, err := platform.Init("ignored", platform.WithAdapter("nope"), platform.WithStorage(injected))
		require.NoError(t, err)
		assert.Same(t, injected, storage)
	})

	t.Run("Custom Filesystem", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		_, err := platform.Init("/home/user/notes", platform.WithFs(mem))
		require.NoError(t, err)

		exists, err := afero.DirExists(mem, "/home/user/notes/"+platform.SystemDir)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestNew_LoadsPersistedNotes(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	store, err := platform.New(dataDir)
	require.NoError(t, err)
	n := store.Create(ctx)
	require.NoError(t, store.Close())

	reopened, err := platform.New(dataDir)
	require.NoError(t, err)
	got, ok := reopened.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got)

	raw, err := os.ReadFile(filepath.Join(dataDir, platform.SystemDir, core.DefaultStorageKey+fs.SlotExt))
	require.NoError(t, err)
	assert.Contains(t, string(raw), n.ID)
}

func TestNew_ReadOnlyRunsInMemory(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	seed, err := platform.New(dataDir)
	require.NoError(t, err)
	seed.Create(ctx)

	store, err := platform.New(dataDir, platform.WithReadOnly(true))
	require.NoError(t, err)
	require.Len(t, store.Notes(), 1)

	store.Create(ctx)
	assert.Len(t, store.Notes(), 2, "in-memory state keeps working")

	again, err := platform.New(dataDir, platform.WithReadOnly(true))
	require.NoError(t, err)
	assert.Len(t, again.Notes(), 1, "nothing was persisted")
}

func TestNew_StorageKey(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	v1, err := platform.New("", platform.WithStorage(storage))
	require.NoError(t, err)
	v1.Create(ctx)

	v2, err := platform.New("", platform.WithStorage(storage), platform.WithStorageKey("notes_app_notes_v2"))
	require.NoError(t, err)
	assert.Empty(t, v2.Notes(), "a new key starts empty, old data is not migrated")
}

func TestResolveDataPath(t *testing.T) {
	assert.Equal(t, "notes", platform.ResolveDataPath("notes", false))
	assert.Equal(t, ".", platform.ResolveDataPath("", false))

	inTemp := filepath.Join(os.TempDir(), "already-temp")
	assert.Equal(t, inTemp, platform.ResolveDataPath(inTemp, true))

	assert.Equal(t, filepath.Join(os.TempDir(), "jot-dev", "notes"), platform.ResolveDataPath("/home/user/notes", true))
	assert.Equal(t, filepath.Join(os.TempDir(), "jot-dev", "default"), platform.ResolveDataPath(".", true))
}

func TestIsDevRun(t *testing.T) {
	assert.True(t, platform.IsDevRun(), "test binaries are dev runs")
}
