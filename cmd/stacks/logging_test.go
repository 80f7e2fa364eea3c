package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/stacks/config"
)

func TestNewLogHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, config.LogConfig{Level: "info", Format: "json"}))

	logger.Debug("hidden")
	logger.Info("mounted directory", "prefix", "/files")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "mounted directory", line["msg"])
	assert.Equal(t, "/files", line["prefix"])
	assert.NotContains(t, line, "time")

	ts, ok := line["ts"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}

func TestNewLogHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, config.LogConfig{Level: "warn", Format: "text"}))

	logger.Info("dropped")
	logger.Warn("directory listing failed", "path", "/srv")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "directory listing failed")
	assert.Contains(t, out, "/srv")
}
