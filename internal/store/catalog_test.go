package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	c := LoadCatalog(path, nil)
	require.Len(t, c.Items(), 12)

	// The default was persisted, so a second load reads the file.
	_, err := os.Stat(path)
	require.NoError(t, err)
	c2 := LoadCatalog(path, nil)
	assert.Equal(t, c.Items(), c2.Items())
}

func TestLoadCatalogCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := LoadCatalog(path, nil)
	assert.Len(t, c.Items(), 12)
}

func TestFindItemExactNameWins(t *testing.T) {
	c := LoadCatalog(filepath.Join(t.TempDir(), "catalog.json"), nil)

	item, ok := c.FindItem("whole wheat bread")
	require.True(t, ok)
	assert.Equal(t, 1, item.ID)
}

func TestFindItemNameSubstringBeatsTag(t *testing.T) {
	c := LoadCatalog(filepath.Join(t.TempDir(), "catalog.json"), nil)

	// "sandwich" appears in the Veg Sandwich name and in the bread's tags.
	// The name substring wins.
	item, ok := c.FindItem("sandwich")
	require.True(t, ok)
	assert.Equal(t, "Veg Sandwich (Ready to Eat)", item.Name)
}

func TestFindItemTagMatch(t *testing.T) {
	c := LoadCatalog(filepath.Join(t.TempDir(), "catalog.json"), nil)

	item, ok := c.FindItem("dairy")
	require.True(t, ok)
	assert.Equal(t, "Milk 1L", item.Name)
}

func TestFindItemMisses(t *testing.T) {
	c := LoadCatalog(filepath.Join(t.TempDir(), "catalog.json"), nil)

	_, ok := c.FindItem("jetpack")
	assert.False(t, ok)
	_, ok = c.FindItem("   ")
	assert.False(t, ok)
}
