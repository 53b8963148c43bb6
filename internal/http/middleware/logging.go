package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nojaf/christmas-elm/internal/logging"
	"github.com/nojaf/christmas-elm/internal/metrics"
)

// RequestIDHeader возвращается клиенту, чтобы связать ответ с записями в логах.
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware создаёт middleware для структурированного логирования HTTP запросов.
// Добавляет в контекст request ID, путь и метод, измеряет время выполнения запроса.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set(RequestIDHeader, requestID)

		ctx := r.Context()
		ctx = logging.WithLogRequestID(ctx, requestID)
		ctx = logging.WithLogRequestPath(ctx, r.URL.Path)
		ctx = logging.WithLogRequestMethod(ctx, r.Method)
		r = r.WithContext(ctx)

		slog.DebugContext(ctx, "request started")
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		timeServe := time.Since(start)
		ctx = logging.WithLogRequestStatus(ctx, rw.statusCode)
		ctx = logging.WithLogRequestDuration(ctx, timeServe.String())
		slog.InfoContext(ctx, "request completed")

		// Шаблон маршрута известен только после того, как chi выполнил маршрутизацию
		endpoint := getEndpoint(r)
		metrics.IncRestRequestsTotal(endpoint)
		metrics.IncRestResponsesDuration(endpoint, r.Method, timeServe)
		metrics.IncRestResponsesStatusesTotal(endpoint, rw.statusCode)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
