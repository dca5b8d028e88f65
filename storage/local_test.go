package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "photo.PNG", strings.NewReader("pixels"), 6, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "http://localhost:8080/uploads/"), ref)
	assert.True(t, strings.HasSuffix(ref, ".png"), "extension should be lowercased: %s", ref)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	require.NoError(t, store.Remove(context.Background(), ref))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreUniqueKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "same.png", strings.NewReader("a"), 1, "image/png")
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "same.png", strings.NewReader("b"), 1, "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStoreRemoveIgnoresForeignRefs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "keep.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	// refs from another store, missing keys, and traversal attempts are no-ops
	assert.NoError(t, store.Remove(context.Background(), "http://minio:9000/notes/images/abc.png"))
	assert.NoError(t, store.Remove(context.Background(), "http://localhost:8080/uploads/gone.png"))
	assert.NoError(t, store.Remove(context.Background(), "http://localhost:8080/uploads/../secret"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "our file must survive foreign removes")

	require.NoError(t, store.Remove(context.Background(), ref))
}

func TestObjectKeySanitizesExtension(t *testing.T) {
	key := objectKey("../../etc/passwd")
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, "..")

	withExt := objectKey("Photo.JPEG")
	assert.True(t, strings.HasSuffix(withExt, ".jpeg"), withExt)

	noExt := objectKey("README")
	assert.NotContains(t, noExt, ".")
}
