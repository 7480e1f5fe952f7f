package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	tr := Load(filepath.Join(t.TempDir(), "history.json"), 10)
	assert.Equal(t, 0, tr.Len())
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	tr := Load(path, 10)
	assert.Equal(t, 0, tr.Len())
}

func TestRecord_Contains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	tr := Load(path, 10)

	tr.Record("a lighthouse", "in oils")

	assert.True(t, tr.Contains("a lighthouse", "in oils"))
	assert.False(t, tr.Contains("a lighthouse", "in watercolour"))
}

func TestRecord_TruncatesLongValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	tr := Load(path, 10)

	long := strings.Repeat("x", 60)
	tr.Record(long, "style")

	// Only the first 40 runes participate in the key, so a value that
	// shares the prefix is considered a repeat.
	assert.True(t, tr.Contains(long+"-with-a-different-tail", "style"))
}

func TestRecord_BoundHolds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	tr := Load(path, 5)

	for i := 0; i < 20; i++ {
		tr.Record(string(rune('a'+i)), "style")
	}

	assert.Equal(t, 5, tr.Len())
	// Oldest entries are evicted.
	assert.False(t, tr.Contains("a", "style"))
	assert.True(t, tr.Contains(string(rune('a'+19)), "style"))
}

func TestRecord_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	tr := Load(path, 10)
	tr.Record("subject one", "style one")
	tr.Record("subject two", "style two")

	reloaded := Load(path, 10)
	assert.Equal(t, 2, reloaded.Len())
	assert.True(t, reloaded.Contains("subject one", "style one"))
	assert.True(t, reloaded.Contains("subject two", "style two"))
}
