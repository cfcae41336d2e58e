package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(tt.level)
			require.NotNil(t, Log)
			assert.True(t, Log.Enabled(ctx, tt.enabled))
			assert.False(t, Log.Enabled(ctx, tt.muted))
		})
	}
}

func TestInitWithConfigFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "solverd.log")
	InitWithConfig(Config{
		Level:    "info",
		Format:   "text",
		Output:   "file",
		FilePath: path,
		MaxSize:  1,
	})
	require.NotNil(t, Log)

	Info("solve finished", "status", "optimal", "total_cost", 5240)
	// Директория создаётся при инициализации
	assert.DirExists(t, filepath.Dir(path))
}

func TestWithRequestID(t *testing.T) {
	Init("info")
	l := WithRequestID("req-123")
	require.NotNil(t, l)
	assert.NotEqual(t, Log, l)
}
