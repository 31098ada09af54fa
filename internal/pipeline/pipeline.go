package pipeline

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"sloptastic/internal/ingest"
	"sloptastic/internal/logging"
	"sloptastic/internal/report"
)

// Result carries one input's outcome. Err is set when the input could not be
// read; Document is then zero.
type Result struct {
	Index    int
	Source   string
	Document report.Document
	Err      error
}

// Loader turns a source name into text.
type Loader func(source string) (string, error)

// FileLoader reads files through ingest with a size limit.
func FileLoader(maxBytes int64) Loader {
	return func(path string) (string, error) {
		parsed, err := ingest.ParseFile(path, maxBytes)
		if err != nil {
			return "", err
		}
		return parsed.Text, nil
	}
}

// AnalyzeSources loads and analyses sources on a bounded worker pool and
// returns results in input order. Each analysis is independent.
func AnalyzeSources(sources []string, workers int, load Loader, logger *slog.Logger) []Result {
	if len(sources) == 0 || load == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	workers = min(workers, len(sources))

	jobs := make(chan int)
	results := make([]Result, len(sources))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = analyzeOne(i, sources[i], load, logger)
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func analyzeOne(index int, source string, load Loader, logger *slog.Logger) Result {
	start := time.Now()
	text, err := load(source)
	if err != nil {
		logger.Warn("input failed", "source", source, "error", err)
		return Result{Index: index, Source: source, Err: err}
	}
	doc := report.Build(source, text)
	logger.Debug("input analyzed",
		"source", source,
		"words", doc.Metrics.Stats.WordCount,
		"tells", doc.Verdict.Tells(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{Index: index, Source: source, Document: doc}
}

// Errors collects the failures in input order, each prefixed with its source.
func Errors(results []Result) []error {
	out := make([]error, 0)
	for _, r := range results {
		if r.Err != nil {
			out = append(out, fmt.Errorf("%s: %w", r.Source, r.Err))
		}
	}
	return out
}

// Documents collects the successful results in input order.
func Documents(results []Result) []report.Document {
	out := make([]report.Document, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Document)
		}
	}
	return out
}
