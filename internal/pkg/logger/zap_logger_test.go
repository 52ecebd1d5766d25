package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogsNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	lines := []string{
		`{"level":"INFO","timestamp":"2025-01-01T00:00:00Z","message":"first","module":"Gallery"}`,
		`not json`,
		`{"level":"WARN","timestamp":"2025-01-01T00:00:01Z","message":"second","module":"Drafts"}`,
		`{"level":"INFO","timestamp":"2025-01-01T00:00:02Z","message":"third","module":"Gallery"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	l := &ZapLogger{filePath: path}
	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)

	info, err := l.GetLogs("INFO", 1, 1)
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, "first", info[0].Message)

	got, err := l.GetLogById(all[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Message)

	_, err = l.GetLogById("nope")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestGetLogsMissingFile(t *testing.T) {
	l := &ZapLogger{filePath: filepath.Join(t.TempDir(), "missing.log")}
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
