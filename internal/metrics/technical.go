package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RestRequestsTotal общее количество HTTP запросов
	RestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hits_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path"},
	)

	// RestResponseDuration гистограмма длительности HTTP запросов
	RestResponseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "time_hits",
			Help:    "Duration of HTTP requests in milliseconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"path", "method"},
	)

	// RestEndpointsResponsesTotal счётчик ответов по статусам
	RestEndpointsResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hits_statuses",
			Help: "Statuses for HTTP responses.",
		},
		[]string{"path", "status"},
	)

	// RestErrorsTotal счётчик неуспешных ответов по классу: 4xx или 5xx
	RestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hits_errors",
			Help: "HTTP responses with status >= 400 grouped by class.",
		},
		[]string{"path", "class"},
	)
)

// IncRestRequestsTotal увеличивает счётчик HTTP запросов.
func IncRestRequestsTotal(path string) {
	RestRequestsTotal.WithLabelValues(path).Inc()
}

// IncRestResponsesDuration записывает длительность HTTP запроса в миллисекундах.
func IncRestResponsesDuration(path, method string, timeServe time.Duration) {
	RestResponseDuration.WithLabelValues(path, method).Observe(float64(timeServe) / float64(time.Millisecond))
}

// IncRestResponsesStatusesTotal увеличивает счётчик ответов по статусу.
func IncRestResponsesStatusesTotal(path string, status int) {
	RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(status)).Inc()
	if status >= http.StatusBadRequest {
		RestErrorsTotal.WithLabelValues(path, statusClass(status)).Inc()
	}
}

// statusClass сворачивает код в класс вида "4xx".
func statusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}
