package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/challengedb/config"
)

func TestParseLevel(t *testing.T) {
	tt := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tt {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestLogHandler_Prod(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logHandler(&buf, config.LogConfig{Level: "info", Env: "prod"}))

	logger.Debug("hidden")
	logger.Info("challenge replaced", "id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "challenge replaced", line["msg"])
	assert.EqualValues(t, 7, line["id"])
	assert.Contains(t, line, "ts")
	assert.NotContains(t, line, "time")
}

func TestLogHandler_Dev(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logHandler(&buf, config.LogConfig{Level: "debug", Env: "dev"}))

	logger.Debug("digest rejected", "path", "/api/challenge/")

	assert.Contains(t, buf.String(), "digest rejected")
	assert.Contains(t, buf.String(), "/api/challenge/")
}
