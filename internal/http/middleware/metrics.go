package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sizeBuckets = []float64{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

var (
	// httpRequestsTotal общее количество HTTP запросов
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// httpRequestDuration гистограмма длительности HTTP запросов
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"method", "endpoint", "status"},
	)

	// httpRequestSize размер тела запроса: растёт вместе с числом участников
	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: sizeBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// httpResponseSize размер тела ответа
	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: sizeBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// MetricsMiddleware собирает метрики для всех HTTP запросов.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		code := ww.Status()
		// Обработчик ничего не записал, net/http ответит 200
		if code == 0 {
			code = http.StatusOK
		}
		status := strconv.Itoa(code)
		method := r.Method
		endpoint := getEndpoint(r)

		httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration)
		httpResponseSize.WithLabelValues(method, endpoint).Observe(float64(ww.BytesWritten()))

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(method, endpoint).Observe(float64(r.ContentLength))
		}
	})
}

// getEndpoint нормализует путь для метрик, используя шаблон маршрута вместо конкретного пути.
func getEndpoint(r *http.Request) string {
	if r == nil {
		return "/"
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if path := r.URL.Path; path != "" {
		return path
	}
	return "/"
}
