package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("Error reading EXIF data", zap.String("path", "a.jpg"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "Error reading EXIF data")
	assert.Contains(t, out, `"path": "a.jpg"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", nil)
	assert.Error(t, err)
}
