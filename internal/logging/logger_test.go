package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/moffa90/go-wt2003s/internal/config"
	"github.com/moffa90/go-wt2003s/player"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("send frame", zap.String("op", "stop"))
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "send frame", entry["msg"])
	assert.Equal(t, "stop", entry["op"])
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "error", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Error("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wt2003s.log")
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		File:   config.LumberjackConfig{Filename: path, MaxSizeMB: 1},
	}, &buf)
	require.NoError(t, err)

	logger.Info("transport bound")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transport bound")
	assert.Contains(t, buf.String(), "transport bound")
}

func TestAdapterSatisfiesPlayerLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewAdapter(zap.New(core))

	var _ player.Logger = adapter

	adapter.Debug("send frame", "op", "stop")
	adapter.Info("transport bound", "transport", "/dev/ttyUSB0@9600")
	adapter.Error("write frame", "op", "next", "error", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "stop", entries[0].ContextMap()["op"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestAdapterWithPlayer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := player.New(nil, player.WithLogger(NewAdapter(zap.New(core))), player.WithStrictParams(true))

	err := p.SetVolume(context.Background(), 99)
	require.Error(t, err)

	rejected := logs.FilterMessage("parameter rejected").AllUntimed()
	require.Len(t, rejected, 1)
	assert.Equal(t, "volume", rejected[0].ContextMap()["param"])
}
