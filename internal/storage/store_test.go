package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "pets/1/a.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/pets/1/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "pets", "1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "pets/1/a.png", key)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "pets", "1", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "../escape.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)

	_, ok := s.KeyFromURL("https://example.com/cat.png")
	assert.False(t, ok)
}

func TestGCSStore_URLMapping(t *testing.T) {
	s := newGCSStoreWithClient(nil, "pets-bucket", "")
	key, ok := s.KeyFromURL("https://storage.googleapis.com/pets-bucket/pets/2/b.webp")
	require.True(t, ok)
	assert.Equal(t, "pets/2/b.webp", key)

	s = newGCSStoreWithClient(nil, "pets-bucket", "https://cdn.example.com/")
	_, ok = s.KeyFromURL("https://storage.googleapis.com/pets-bucket/x.png")
	assert.False(t, ok)
}

func TestNew_SelectsDriver(t *testing.T) {
	st, err := New(context.Background(), &config.Config{StorageDriver: "local", UploadDir: t.TempDir(), PublicUploadPath: "/uploads"})
	require.NoError(t, err)
	assert.Equal(t, "local", st.Name())

	_, err = New(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
