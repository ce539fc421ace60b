package hexpix

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catalog.db")

	c, err := NewCatalog(file)
	require.Nil(t, err)

	data, err := c.Find("ABCD", 0)
	require.Nil(t, err)
	assert.Nil(t, data)

	e := Entry{
		SHA1:   "ABCD",
		Path:   "b.png",
		Width:  2,
		Height: 1,
		Data:   []byte{2, 0, 0, 0, 1, 0, 0, 0, '0', '0', '0', '0', '0', '0', 'f', 'f', 'f', 'f', 'f', 'f'},
	}

	id, err := c.Add(e)
	require.Nil(t, err)

	// Adding the same source and colors again is a no-op
	again, err := c.Add(e)
	require.Nil(t, err)
	assert.Equal(t, id, again)

	_, err = c.Add(Entry{SHA1: "ABCD", Colors: 16, Path: "a.png", Width: 2, Height: 1, Data: e.Data})
	require.Nil(t, err)

	data, err = c.Find("ABCD", 0)
	require.Nil(t, err)
	assert.Equal(t, e.Data, data)

	data, err = c.Find("ABCD", 8)
	require.Nil(t, err)
	assert.Nil(t, data)

	require.Nil(t, c.Close())

	// Entries survive reopening
	c, err = NewCatalog(file)
	require.Nil(t, err)
	defer c.Close()

	entries, err := c.Entries()
	require.Nil(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.png", entries[0].Path)
	assert.Equal(t, 16, entries[0].Colors)
	assert.Equal(t, "b.png", entries[1].Path)
	assert.Equal(t, id, entries[1].ID)
	assert.Nil(t, entries[1].Data)
}
