package offline

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"sloptastic/internal/logging"
	"sloptastic/internal/pipeline"
	"sloptastic/internal/report"
	"sloptastic/internal/slop"
)

type failTransport struct{}

func (f failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network disabled for offline test")
}

func TestOfflineMode(t *testing.T) {
	original := http.DefaultTransport
	http.DefaultTransport = failTransport{}
	t.Cleanup(func() { http.DefaultTransport = original })

	text := strings.Repeat("Moreover, it's subtle. It shows up in everything. ", 200)

	first := slop.Analyze(text)
	if first.Stats.MeanSentenceLength == 0 {
		t.Fatal("expected analysis to work offline")
	}
	if again := slop.Analyze(text); !reflect.DeepEqual(first, again) {
		t.Fatal("expected identical metrics for identical input")
	}

	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	results := pipeline.AnalyzeSources([]string{path}, 1, pipeline.FileLoader(0), logging.Discard())
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("expected file analysis to work offline, got %+v", results)
	}
	if !reflect.DeepEqual(results[0].Document.Metrics, first) {
		t.Fatal("file analysis differs from direct analysis")
	}

	if md := report.Markdown(results[0].Document); !strings.Contains(md, "Contradiction patterns detected (1)") {
		t.Fatal("expected the contradiction finding in the offline report")
	}
}
