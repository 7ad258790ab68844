package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
)

func TestStore_ReadReplacesInvalidBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 'a\xffb'\ny = 2\n"), 0644))

	rec, err := filestore.New().Read(path)
	require.NoError(t, err)

	assert.Equal(t, "x = 'a�b'\ny = 2\n", rec.Content)
	assert.Equal(t, []string{"x = 'a�b'", "y = 2"}, rec.Lines)
	assert.Equal(t, path, rec.Path)
}

func TestStore_ReadMissingFile(t *testing.T) {
	_, err := filestore.New().Read(filepath.Join(t.TempDir(), "gone.py"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_WriteAtomicReplacesContentAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.sh.py")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, filestore.New().WriteAtomic(path, "new\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestStore_WriteAtomicMissingDirectory(t *testing.T) {
	err := filestore.New().WriteAtomic(filepath.Join(t.TempDir(), "missing", "a.py"), "x\n")
	assert.Error(t, err)
}
