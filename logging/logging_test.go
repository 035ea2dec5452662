package logging_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/logging"
)

func TestLogger_WritesJSONLEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	l, err := logging.Open(path)
	require.NoError(t, err)

	l.PhaseBoundary(0, 4, 4)
	l.InsertBatch("main.py", 3)
	l.Error("util.py", assertErr{})

	require.NoError(t, l.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []logging.Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e logging.Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 3)

	assert.Equal(t, logging.EventPhaseBoundary, entries[0].Type)
	assert.Equal(t, 4, entries[0].Queued)
	assert.Equal(t, logging.EventInsertBatch, entries[1].Type)
	assert.Equal(t, "main.py", entries[1].File)
	assert.Equal(t, 3, entries[1].Count)
	assert.Equal(t, logging.EventError, entries[2].Type)
	assert.Equal(t, "util.py", entries[2].File)
	assert.Equal(t, "boom", entries[2].Message)
	assert.WithinDuration(t, time.Now(), entries[0].Timestamp, time.Minute)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
