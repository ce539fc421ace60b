package hexpix

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceExt(t *testing.T) {
	tables := []struct {
		file, ext, want string
	}{
		{"a.png", ".hexpix", "a.hexpix"},
		{"dir/a.b.png", ".hexpix", "dir/a.b.hexpix"},
		{"noext", ".hexpix", "noext.hexpix"},
		{"a.hexpix", ".bmp", "a.bmp"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, replaceExt(table.file, table.ext))
	}
}

func TestWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.hexpix")

	require.Nil(t, ioutil.WriteFile(file, []byte("a much longer old file"), 0644))
	require.Nil(t, writeFile(file, []byte("new")))

	b, err := ioutil.ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, "new", string(b))

	// No temporary files are left behind
	files, err := ioutil.ReadDir(dir)
	require.Nil(t, err)
	assert.Len(t, files, 1)
}

func TestWriteFileFails(t *testing.T) {
	dir := t.TempDir()

	// Renaming over a directory fails after the temporary file is written
	target := filepath.Join(dir, "target")
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "keep"), nil, 0644))
	require.Nil(t, os.Mkdir(target, 0755))

	err := writeFile(target, []byte("data"))
	assert.True(t, errors.Is(err, ErrContainerWrite), "got %v", err)

	files, err := ioutil.ReadDir(dir)
	require.Nil(t, err)
	assert.Len(t, files, 2)

	err = writeFile(filepath.Join(dir, "missing", "out.hexpix"), []byte("data"))
	assert.True(t, errors.Is(err, ErrContainerWrite), "got %v", err)
}

func TestSyncDir(t *testing.T) {
	assert.Nil(t, syncDir(t.TempDir()))
	assert.NotNil(t, syncDir(filepath.Join(t.TempDir(), "missing")))
}
