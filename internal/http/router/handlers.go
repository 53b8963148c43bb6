package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nojaf/christmas-elm/internal/http/handler/common"
	"github.com/nojaf/christmas-elm/internal/http/handler/generation"
	"github.com/nojaf/christmas-elm/internal/http/middleware"
	"github.com/nojaf/christmas-elm/internal/http/swagger"
)

// Options задаёт параметры HTTP-слоя.
type Options struct {
	SwaggerSpec      []byte
	OperationTimeout time.Duration
	MaxBodyBytes     int64
}

// Handler агрегирует HTTP-эндпоинты.
type Handler struct {
	generator generation.UseCase
	opts      Options
}

func New(generator generation.UseCase, opts Options) *Handler {
	return &Handler{generator: generator, opts: opts}
}

// Router возвращает готовый chi.Router со всеми зарегистрированными маршрутами и middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Middleware применяются в порядке объявления
	r.Use(chimw.RequestID)              // Добавляет уникальный ID каждому запросу
	r.Use(chimw.RealIP)                 // Определяет реальный IP клиента
	r.Use(middleware.PanicMiddleware)   // Перехватывает паники
	r.Use(middleware.LoggerMiddleware)  // Логирует все запросы
	r.Use(middleware.MetricsMiddleware) // Собирает метрики Prometheus
	swagger.RegisterRoutes(r, h.opts.SwaggerSpec)

	// Внешних зависимостей нет, поэтому живой процесс считается здоровым
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(router chi.Router) {
		if h.opts.OperationTimeout > 0 {
			router.Use(chimw.Timeout(h.opts.OperationTimeout))
		}
		generation.New(h.generator, h.opts.MaxBodyBytes).Register(router)
	})

	return r
}
