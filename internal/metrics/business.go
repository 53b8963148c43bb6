package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Причины неуспешной жеребьёвки для метки reason.
const (
	FailureInvalid    = "invalid"
	FailureImpossible = "impossible"
)

var (
	generations = promauto.NewCounter(
		prometheusCounterOpts("derangements_generated_total", "Total number of successful draws"),
	)
	generationFailures = promauto.NewCounterVec(
		prometheusCounterOpts("derangement_failures_total", "Total number of rejected draws by reason"),
		[]string{"reason"},
	)
	participantsProcessed = promauto.NewCounter(
		prometheusCounterOpts("participants_processed_total", "Total number of participants in successful draws"),
	)
	fallbacks = promauto.NewCounter(
		prometheusCounterOpts("derangement_fallbacks_total", "Draws that exhausted shuffle attempts and used a single-cycle permutation"),
	)
	attempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "derangement_attempts",
			Help:    "Shuffle attempts needed per draw",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 1000},
		},
	)
)

// IncGenerations увеличивает счётчик успешных жеребьёвок.
func IncGenerations() {
	generations.Inc()
}

// IncGenerationFailures увеличивает счётчик отказов с указанной причиной.
func IncGenerationFailures(reason string) {
	generationFailures.WithLabelValues(reason).Inc()
}

// AddParticipantsProcessed увеличивает счётчик обработанных участников.
func AddParticipantsProcessed(delta int) {
	if delta <= 0 {
		return
	}
	participantsProcessed.Add(float64(delta))
}

// IncFallbacks увеличивает счётчик переходов на алгоритм Саттоло.
func IncFallbacks() {
	fallbacks.Inc()
}

// ObserveAttempts записывает число попыток перемешивания.
func ObserveAttempts(n int) {
	if n <= 0 {
		return
	}
	attempts.Observe(float64(n))
}

func prometheusCounterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Name: name,
		Help: help,
	}
}
