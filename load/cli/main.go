package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	defaultBaseURL      = "http://localhost:8080"
	defaultRate         = 50
	defaultDuration     = 60 * time.Second
	defaultParticipants = 12
	defaultResultsFile  = "load/artifacts/results.bin"
	defaultMinSuccess   = 0.99
)

var resultsFile = defaultResultsFile

func main() {
	var (
		baseURL      = flag.String("url", defaultBaseURL, "Base URL сервиса")
		rate         = flag.Int("rate", defaultRate, "Запросов в секунду")
		duration     = flag.Duration("duration", defaultDuration, "Длительность теста (например, 60s)")
		participants = flag.Int("participants", defaultParticipants, "Число участников в одной жеребьёвке")
		minSuccess   = flag.Float64("min-success", defaultMinSuccess, "Минимальная доля успешных ответов")
		probeOnly    = flag.Bool("probe-only", false, "Только проверить, что сервис отвечает на /generation")
		report       = flag.Bool("report", false, "Показать отчёт из сохранённых результатов")
		plot         = flag.Bool("plot", false, "Сгенерировать HTML график из сохранённых результатов")
	)
	flag.Parse()

	if *report {
		showReport()
		return
	}

	if *plot {
		generatePlot()
		return
	}

	if *probeOnly {
		if err := probe(*baseURL, *participants); err != nil {
			log.Fatalf("Сервис не готов: %v", err)
		}
		return
	}

	// Полный цикл: проверка + нагрузочное тестирование
	fmt.Println("=== Нагрузочное тестирование с Vegeta ===")
	fmt.Printf("URL: %s\n", *baseURL)
	fmt.Printf("Rate: %d req/s\n", *rate)
	fmt.Printf("Duration: %s\n", *duration)
	fmt.Printf("Participants: %d\n", *participants)
	fmt.Println()

	fmt.Println("1. Проверка доступности сервиса...")
	if err := probe(*baseURL, *participants); err != nil {
		log.Fatalf("Сервис не готов: %v", err)
	}

	fmt.Println()
	fmt.Println("2. Запуск нагрузочного тестирования...")
	if err := runLoadTest(*baseURL, *rate, *duration, *participants, *minSuccess); err != nil {
		log.Fatalf("Ошибка при нагрузочном тестировании: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Тестирование завершено ===")
	fmt.Println("Для детального анализа выполните:")
	fmt.Printf("  go run ./load/cli -report\n")
	fmt.Printf("  go run ./load/cli -plot\n")
}

// probe отправляет одну жеребьёвку и ожидает 200
func probe(baseURL string, participants int) error {
	targeter := newGenerationTargeter(baseURL, participants)

	attacker := vegeta.NewAttacker()
	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: 1, Per: time.Second}, time.Second, "probe") {
		metrics.Add(res)
	}
	metrics.Close()

	if metrics.StatusCodes["200"] == 0 {
		return fmt.Errorf("жеребьёвка не прошла: статус %v", metrics.StatusCodes)
	}

	fmt.Println("Сервис отвечает на /generation")
	return nil
}

// runLoadTest запускает нагрузочное тестирование
// и проверяет, что доля успешных ответов не ниже minSuccess.
func runLoadTest(baseURL string, rate int, duration time.Duration, participants int, minSuccess float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", rate)
	}
	targeter := newGenerationTargeter(baseURL, participants)

	attacker := vegeta.NewAttacker(
		vegeta.Timeout(30*time.Second),
		vegeta.Workers(uint64(rate)),
	)

	var metrics vegeta.Metrics
	ctx, cancel := context.WithTimeout(context.Background(), duration+5*time.Second)
	defer cancel()

	results := attacker.Attack(targeter, vegeta.Rate{Freq: rate, Per: time.Second}, duration, "load-test")

	var allResults []vegeta.Result
collect:
	for res := range results {
		select {
		case <-ctx.Done():
			attacker.Stop()
			break collect
		default:
			metrics.Add(res)
			allResults = append(allResults, *res)
		}
	}
	metrics.Close()

	if err := saveResults(allResults); err != nil {
		return fmt.Errorf("сохранить результаты: %w", err)
	}

	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(os.Stdout); err != nil {
		return fmt.Errorf("сгенерировать отчёт: %w", err)
	}

	return checkSuccess(&metrics, minSuccess)
}

// checkSuccess сравнивает долю ответов 2xx с порогом.
func checkSuccess(metrics *vegeta.Metrics, minSuccess float64) error {
	if metrics.Requests == 0 {
		return errors.New("не отправлено ни одного запроса")
	}
	if metrics.Success < minSuccess {
		return fmt.Errorf("доля успешных ответов %.2f%% ниже порога %.2f%% (статусы: %v)",
			metrics.Success*100, minSuccess*100, metrics.StatusCodes)
	}
	return nil
}

// newGenerationTargeter строит запросы с уникальными списками участников и seed,
// чтобы нагрузка не сводилась к одной и той же перестановке.
func newGenerationTargeter(baseURL string, participants int) vegeta.Targeter {
	var seq atomic.Int64
	return func(t *vegeta.Target) error {
		if t == nil {
			return vegeta.ErrNilTarget
		}
		n := seq.Add(1)
		stamp := time.Now().UnixNano() + n
		ids := make([]string, participants)
		for i := range ids {
			ids[i] = fmt.Sprintf("load-%d-%d", n, i)
		}

		body, err := json.Marshal(map[string]any{"ids": ids, "seed": stamp})
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}

		*t = vegeta.Target{
			Method: http.MethodPost,
			URL:    fmt.Sprintf("%s/generation", baseURL),
			Header: http.Header{"Content-Type": []string{"application/json"}},
			Body:   body,
		}
		return nil
	}
}

// saveResults сохраняет результаты в бинарный файл
func saveResults(results []vegeta.Result) error {
	if err := os.MkdirAll(filepath.Dir(resultsFile), 0o755); err != nil {
		return fmt.Errorf("создать директорию: %w", err)
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		return fmt.Errorf("создать файл: %w", err)
	}
	defer file.Close()

	encoder := vegeta.NewEncoder(file)
	for i := range results {
		if err := encoder.Encode(&results[i]); err != nil {
			return fmt.Errorf("записать результат: %w", err)
		}
	}

	fmt.Printf("Результаты сохранены в %s\n", resultsFile)
	return nil
}

// showReport показывает отчёт из сохранённых результатов
func showReport() {
	if err := renderReport(os.Stdout, resultsFile); err != nil {
		log.Fatalf("Не удалось построить отчёт: %v", err)
	}
}

func renderReport(out io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer file.Close()

	decoder := vegeta.NewDecoder(file)
	var metrics vegeta.Metrics

	for {
		var res vegeta.Result
		if err := decoder.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode result: %w", err)
		}
		metrics.Add(&res)
	}
	metrics.Close()

	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// generatePlot выводит инструкцию по генерации HTML графика через CLI утилиту vegeta
func generatePlot() {
	writePlotInstructions(os.Stdout)
}

func writePlotInstructions(out io.Writer) {
	fmt.Fprintln(out, "Для генерации HTML графика используйте CLI утилиту vegeta:")
	fmt.Fprintf(out, "  vegeta plot %s > load/artifacts/plot.html\n", resultsFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Установка CLI утилиты:")
	fmt.Fprintln(out, "  go install github.com/tsenart/vegeta/v12@latest")
}
