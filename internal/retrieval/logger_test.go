package retrieval_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"floorassist/internal/retrieval"
)

func TestQueryLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := retrieval.NewQueryLogger(&buf)

	l.Log(retrieval.QueryLogEntry{Query: "first", NumResults: 2, Duration: 15 * time.Millisecond})
	l.Log(retrieval.QueryLogEntry{Query: "second", NumResults: 0})

	scanner := bufio.NewScanner(&buf)
	var entries []retrieval.QueryLogEntry
	for scanner.Scan() {
		var e retrieval.QueryLogEntry
		assert.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}

	assert.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Query)
	assert.Equal(t, int64(15), entries[0].LatencyMs)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, 0, entries[1].NumResults)
}

func TestNewFileQueryLogger_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "query.log")

	l, err := retrieval.NewFileQueryLogger(path)
	assert.NoError(t, err)
	l.Log(retrieval.QueryLogEntry{Query: "q"})

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"query":"q"`)
}
