package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"chainscope/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(config.LoggerConfig{Level: "info", Encoding: "json"}, &buf)

	l.Debug("hidden")
	l.Info("ranked endpoints", zap.Int64("chainId", 1))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ranked endpoints", entry["msg"])
	assert.Equal(t, float64(1), entry["chainId"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(config.LoggerConfig{Level: "loud", Encoding: "console"}, &buf)

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
