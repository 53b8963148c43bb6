package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/nojaf/christmas-elm/internal/config"
	"github.com/nojaf/christmas-elm/internal/http/router"
	"github.com/nojaf/christmas-elm/internal/infrastructure/nower"
	"github.com/nojaf/christmas-elm/internal/infrastructure/randomizer"
	"github.com/nojaf/christmas-elm/internal/service"
)

// App отвечает за жизненный цикл сервиса.
type App struct {
	cfg    config.Config
	server *http.Server
}

// New подготавливает все зависимости приложения: сервис жеребьёвки и HTTP-роутер.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	svc := service.New(cfg, randomizer.New(), nower.New())

	var swaggerSpec []byte
	if data, err := os.ReadFile(cfg.Swagger.SpecPath); err != nil {
		slog.WarnContext(ctx, "failed to load swagger spec", "path", cfg.Swagger.SpecPath, "error", err)
	} else {
		swaggerSpec = data
	}
	handler := router.New(svc, router.Options{
		SwaggerSpec:      swaggerSpec,
		OperationTimeout: cfg.Timeouts.Operation,
		MaxBodyBytes:     cfg.Limits.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		server: srv,
	}, nil
}

// Run слушает адрес из конфигурации до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.Serve(ctx, ln)
}

// Serve обслуживает запросы на готовом listener и корректно завершается при отмене ctx.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		// Graceful shutdown: даём серверу время завершить обработку текущих запросов
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeouts.Shutdown)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
