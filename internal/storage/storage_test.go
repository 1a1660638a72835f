package storage

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Save(pngBytes(t), "avatar.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_avatar.png"))
	assert.NotEqual(t, "avatar.png", stored)

	_, statErr := os.Stat(filepath.Join(store.Dir(), stored))
	require.NoError(t, statErr)

	require.NoError(t, store.Remove(stored))
	_, statErr = os.Stat(filepath.Join(store.Dir(), stored))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveRejectsNonImages(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save([]byte("<html>not an image</html>"), "page.png")
	assert.Error(t, err)

	_, err = store.Save(pngBytes(t), "script.sh")
	assert.Error(t, err)
}

func TestSaveSanitizesPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Save(pngBytes(t), "../../etc/my pic.png")
	require.NoError(t, err)
	assert.False(t, strings.Contains(stored, ".."))
	assert.False(t, strings.Contains(stored, "/"))
	assert.True(t, strings.HasSuffix(stored, "_my_pic.png"))
}

func TestRemoveKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultAvatar), pngBytes(t), 0o644))
	require.NoError(t, store.Remove(DefaultAvatar))

	_, statErr := os.Stat(filepath.Join(dir, DefaultAvatar))
	assert.NoError(t, statErr)

	// Removing a file that is already gone is fine.
	assert.NoError(t, store.Remove("does-not-exist.png"))
}

func TestIsDefault(t *testing.T) {
	assert.True(t, IsDefault(DefaultAvatar))
	assert.True(t, IsDefault(DefaultArticle))
	assert.True(t, IsDefault(DefaultDiscussion))
	assert.False(t, IsDefault("abc_photo.png"))
}
