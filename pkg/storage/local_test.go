package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("report", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["report"][0]
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	path, err := store.Save(fileHeader(t, "report.pdf", []byte("%PDF-1.4 test")))
	require.NoError(t, err)
	assert.True(t, filepath.IsLocal(path))

	onDisk := filepath.Join(filepath.Dir(dir), path)
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is not an error.
	assert.NoError(t, store.Remove(path))
}

func TestSaveRejectsUnsupportedTypes(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	for _, name := range []string{"malware.exe", "notes.txt", "archive.zip", "noext"} {
		_, err := store.Save(fileHeader(t, name, []byte("data")))
		assert.Error(t, err, name)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	first, err := store.Save(fileHeader(t, "scan.png", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "scan.png", []byte("b")))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestURL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	url := store.URL("uploads/123-abc.pdf")
	assert.Equal(t, "http://localhost:8080/uploads/123-abc.pdf", url)
}
