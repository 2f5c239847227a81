package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("4 Charizard SVI 125\n"), 0644))
}

func TestWalkFindsDecklists(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "charizard.txt")
	touch(t, root, "league/lugia.DECK")
	touch(t, root, "league/notes.md")
	touch(t, root, "regionals/gardevoir.ptcgl")

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)

	var rels []string
	for _, e := range entries {
		assert.True(t, filepath.IsAbs(e.Path))
		rels = append(rels, e.Rel)
	}
	assert.Equal(t, []string{
		"charizard.txt",
		filepath.Join("league", "lugia.DECK"),
		filepath.Join("regionals", "gardevoir.ptcgl"),
	}, rels)
}

func TestWalkCustomExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.txt")
	touch(t, root, "b.list")

	entries, err := NewWalker(".list").Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.list", entries[0].Rel)
}

func TestWalkRejectsFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.txt")

	_, err := NewWalker().Walk(filepath.Join(root, "a.txt"))
	assert.ErrorContains(t, err, "not a directory")

	_, err = NewWalker().Walk(filepath.Join(root, "missing"))
	assert.ErrorContains(t, err, "stat root")
}
