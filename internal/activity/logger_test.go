package activity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_AppendsLines(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	l.Record("user-1", "Text Extraction", "file: note.png")
	l.Record("user-1", "Language Translated", "target: fr")

	data, err := os.ReadFile(filepath.Join(l.dir, "user-1_log.txt"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "Text Extraction - file: note.png")
	assert.Contains(t, lines[4], "Language Translated - target: fr")
}

func TestRecord_WritesHeaderOnFreshFile(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	// First write is an activity, not a download; the file must still open
	// with the header line.
	l.Record("user-1", "Text Extraction", "file: note.png")

	data, err := os.ReadFile(filepath.Join(l.dir, "user-1_log.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Activity log for user ID: user-1\n"))
}

func TestRecord_SeparateFilesPerUser(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	l.Record("user-1", "Login", "")
	l.Record("user-2", "Login", "")

	entries, err := os.ReadDir(l.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEnsureFile_WritesHeaderOnce(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	p, err := l.EnsureFile("user-1")
	require.NoError(t, err)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Activity log for user ID: user-1")

	l.Record("user-1", "Login", "")

	// A second call must not truncate existing content.
	_, err = l.EnsureFile("user-1")
	require.NoError(t, err)

	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Login")
}

func TestRecord_ConcurrentAppends(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record("user-1", "Text Extraction", "")
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(filepath.Join(l.dir, "user-1_log.txt"))
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(data), "Text Extraction"))
}
