package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestFAQ(t *testing.T) *FAQ {
	t.Helper()
	return LoadFAQ(filepath.Join(t.TempDir(), "faq.json"), nil)
}

func TestMatchPicksHighestKeywordCount(t *testing.T) {
	f := loadTestFAQ(t)

	// "pricing" and "free" both hit the pricing entry; nothing else scores 2.
	entry, ok := f.Match("what's your pricing, is there a free tier?")
	require.True(t, ok)
	assert.Equal(t, 2, entry.ID)
}

func TestMatchTieGoesToFirstEntry(t *testing.T) {
	f := &FAQ{entries: []FAQEntry{
		{ID: 1, Keywords: []string{"alpha"}},
		{ID: 2, Keywords: []string{"alpha"}},
	}}

	entry, ok := f.Match("tell me about alpha")
	require.True(t, ok)
	assert.Equal(t, 1, entry.ID)
}

func TestMatchZeroScoreIsNoMatch(t *testing.T) {
	f := loadTestFAQ(t)

	_, ok := f.Match("completely unrelated gibberish")
	assert.False(t, ok)
	_, ok = f.Match("")
	assert.False(t, ok)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	f := loadTestFAQ(t)

	entry, ok := f.Match("Does it INTEGRATE with our CRM?")
	require.True(t, ok)
	assert.Equal(t, 3, entry.ID)
}
