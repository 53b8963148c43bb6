package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nojaf/christmas-elm/internal/app"
	"github.com/nojaf/christmas-elm/internal/config"
	"github.com/nojaf/christmas-elm/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.MustLoad()
	cleanup, err := setupLogger(cfg)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}
	defer cleanup()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to init app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application stopped with error", "error", err)
		os.Exit(1)
	}
}

// setupLogger настраивает структурированное логирование на основе конфигурации.
// Возвращает функцию для закрытия файла логов (если используется файл).
func setupLogger(cfg config.Config) (func(), error) {
	writer, closer, err := openLogOutput(cfg.Logging.Output)
	if err != nil {
		return nil, err
	}

	handler := slog.Handler(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cfg.Logging.Level),
	}))
	handler = logging.NewLoggerImpl(handler)
	slog.SetDefault(slog.New(handler))

	return func() {
		if closer != nil {
			_ = closer.Close()
		}
	}, nil
}

// openLogOutput определяет куда писать логи: stdout, stderr или файл.
func openLogOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "stdout", "":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
