package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	kv, err := NewFileKV(dir, nil)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	_, ok, err := kv.Get(ctx, "approvedContributions")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "approvedContributions", []byte(`[]`)))
	data, ok, err := kv.Get(ctx, "approvedContributions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))
	assert.FileExists(t, filepath.Join(dir, "approvedContributions.json"))

	require.NoError(t, kv.Delete(ctx, "approvedContributions"))
	require.NoError(t, kv.Delete(ctx, "approvedContributions"))
	_, ok, err = kv.Get(ctx, "approvedContributions")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_Update(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir(), nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := kv.Update(ctx, "counter", func(current []byte, ok bool) ([]byte, error) {
			return append(current, 'x'), nil
		})
		require.NoError(t, err)
	}

	data, _, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "xxx", string(data))

	entries, err := os.ReadDir(kv.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.Contains(t, []string{"counter.json", lockFileName}, e.Name())
	}
}

func TestFileKV_RejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir(), nil)
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, kv.Put(ctx, key, []byte("x")), key)
		_, _, err := kv.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	value := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", value))
	value[0] = 'z'

	got, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", string(got))
}
