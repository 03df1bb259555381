package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream interrupted")
}

func TestNewLocalStorage_CreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorage_SaveStreamWritesFile(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	name, err := store.SaveStream("7_20250402081530_ab12cd34.pdf", strings.NewReader("%PDF-1.4 scan"))
	require.NoError(t, err)
	assert.Equal(t, "7_20250402081530_ab12cd34.pdf", name)

	data, err := os.ReadFile(filepath.Join(base, name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 scan", string(data))
}

func TestLocalStorage_SaveStreamRemovesPartialFileOnError(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	_, err = store.SaveStream("broken.pdf", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(base, "broken.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_Delete(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	_, err = store.SaveStream("old.png", strings.NewReader("png bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete("old.png"))
	_, statErr := os.Stat(filepath.Join(base, "old.png"))
	assert.True(t, os.IsNotExist(statErr))

	// deleting a file that is already gone is not an error
	assert.NoError(t, store.Delete("old.png"))
}

func TestLocalStorage_PathJoinsBaseDir(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "x.jpg"), store.Path("x.jpg"))
}
