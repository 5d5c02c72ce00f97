package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

func TestStorage(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrSlotNotFound)

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got), "stored bytes are copied")

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Equal(t, 1, s.Writes())
}

func TestStorage_FailWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	boom := errors.New("quota exceeded")

	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("x")), boom)

	s.FailWrites(nil)
	assert.NoError(t, s.Set(ctx, "k", []byte("x")))
}

func TestStorage_Keys(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	for _, k := range []string{"b", "a", "notes_app_notes_v1"} {
		require.NoError(t, s.Set(ctx, k, nil))
	}

	keys, err := s.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "notes_app_notes_v1"}, keys)

	keys, err = s.Keys(ctx, "notes_*_v?")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes_app_notes_v1"}, keys)
}

func TestReadOnly(t *testing.T) {
	s := memory.NewReadOnly(map[string][]byte{"k": []byte("v")})
	ctx := context.Background()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.ErrorIs(t, s.Set(ctx, "k", nil), core.ErrReadOnly)
	assert.ErrorIs(t, s.Delete(ctx, "k"), core.ErrReadOnly)
}
