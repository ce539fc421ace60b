package hexpix

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bodgit/hexpix/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	for _, file := range []string{"a.png", "a.PNG", "a.gif", "a.jpg", "a.jpeg", "a.bmp"} {
		assert.True(t, isImage(file), file)
	}
	for _, file := range []string{"a.hexpix", "a.txt", "png", "a.db"} {
		assert.False(t, isImage(file), file)
	}
}

func assertNoFile(t *testing.T, file string) {
	t.Helper()
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err), "%s exists", file)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, d := range []string{"a", filepath.Join("a", "b"), ".hidden"} {
		require.Nil(t, os.MkdirAll(filepath.Join(dir, d), 0755))
	}

	images := []string{
		"top.png",
		filepath.Join("a", "one.png"),
		filepath.Join("a", "b", "two.png"),
	}
	for _, file := range images {
		writePNG(t, filepath.Join(dir, file), testImage())
	}
	writePNG(t, filepath.Join(dir, ".hidden", "skip.png"), testImage())
	writePNG(t, filepath.Join(dir, ".dotfile.png"), testImage())
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	h := newHexPix(t, filepath.Join(t.TempDir(), "catalog.db"))

	require.Nil(t, h.Scan(dir, CompileOptions{}, 2))

	for _, file := range images {
		assert.FileExists(t, filepath.Join(dir, replaceExt(file, container.Extension)))
	}
	assertNoFile(t, filepath.Join(dir, ".hidden", "skip"+container.Extension))
	assertNoFile(t, filepath.Join(dir, ".dotfile"+container.Extension))
	assertNoFile(t, filepath.Join(dir, "notes"+container.Extension))

	entries, err := h.Catalog().Entries()
	require.Nil(t, err)
	// Every image has the same content so there's only one entry
	assert.Len(t, entries, 1)
}

func TestScanError(t *testing.T) {
	dir := t.TempDir()

	writePNG(t, filepath.Join(dir, "good.png"), testImage())
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0644))

	h := newHexPix(t, "")

	err := h.Scan(dir, CompileOptions{}, 0)
	assert.True(t, errors.Is(err, ErrImageRead), "got %v", err)
}

func TestScanMissing(t *testing.T) {
	h := newHexPix(t, "")
	assert.NotNil(t, h.Scan(filepath.Join(t.TempDir(), "missing"), CompileOptions{}, 1))
}

func countContainers(t *testing.T, dir string) int {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*"+container.Extension))
	require.Nil(t, err)
	return len(files)
}

func TestScanErrorStopsWorkers(t *testing.T) {
	dir := t.TempDir()

	// The walk is lexical so the bad image is handed out first
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "aaa.png"), []byte("not an image"), 0644))
	for i := 0; i < 50; i++ {
		writePNG(t, filepath.Join(dir, fmt.Sprintf("image%02d.png", i)), testImage())
	}

	h := newHexPix(t, "")

	err := h.Scan(dir, CompileOptions{}, 4)
	assert.True(t, errors.Is(err, ErrImageRead), "got %v", err)

	// Nothing is still writing containers once Scan has returned
	n := countContainers(t, dir)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, n, countContainers(t, dir))
	assert.True(t, n < 50, "got %d containers", n)
}

func TestScanSharedContainerPath(t *testing.T) {
	dir := t.TempDir()

	writePNG(t, filepath.Join(dir, "a.png"), testImage())

	m := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	m.Set(0, 0, color.NRGBA{0, 0, 0, 0xff})
	f, err := os.Create(filepath.Join(dir, "a.gif"))
	require.Nil(t, err)
	require.Nil(t, gif.Encode(f, m, nil))
	require.Nil(t, f.Close())

	buf := new(bytes.Buffer)
	h, err := New("", log.New(buf, "", 0))
	require.Nil(t, err)
	defer h.Close()

	require.Nil(t, h.Scan(dir, CompileOptions{}, 2))

	// a.gif is found first and keeps the container
	r, err := os.Open(filepath.Join(dir, "a"+container.Extension))
	require.Nil(t, err)
	defer r.Close()

	cfg, err := container.DecodeConfig(r)
	require.Nil(t, err)
	assert.Equal(t, 1, cfg.Width)
	assert.Equal(t, 1, cfg.Height)

	assert.Contains(t, buf.String(), "Skipping \""+filepath.Join(dir, "a.png")+"\", \""+filepath.Join(dir, "a.gif")+"\" already compiles to")
}
