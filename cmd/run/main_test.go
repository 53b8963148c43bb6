package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nojaf/christmas-elm/internal/config"
)

func TestSetupLoggerCreatesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := config.Config{
		Logging: config.LoggingConfig{
			Output: path,
			Level:  "debug",
		},
	}

	cleanup, err := setupLogger(cfg)
	require.NoError(t, err)

	slog.Info("test message")
	cleanup()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestSetupLoggerFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := setupLogger(config.Config{Logging: config.LoggingConfig{Output: filepath.Join(blocker, "app.log")}})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("info"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
