package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden %d", 1)
	log.Warn("reservation id=%d conflicted", 42)
	log.Error("boom: %v", "db down")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "reservation id=42 conflicted")
	assert.Contains(t, out, "boom: db down")
	assert.Contains(t, out, "level=warning")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("search finished: %d restaurants", 3)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search finished: 3 restaurants")
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info")
	require.NoError(t, err)

	log.WithField("request_id", "abc").Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}
