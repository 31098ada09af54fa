package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sloptastic/internal/config"
	"sloptastic/internal/report"
)

func TestEnsureAtSeedsConfig(t *testing.T) {
	base := filepath.Join(t.TempDir(), config.DefaultWorkspaceName)
	l, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	for _, p := range []string{l.Root, l.ReportsDir, l.ConfigPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected path to exist %s: %v", p, err)
		}
	}

	cfg, err := config.Load(l.ConfigPath)
	if err != nil {
		t.Fatalf("seeded config does not load: %v", err)
	}
	if cfg.Workspace != base {
		t.Fatalf("expected workspace %s, got %s", base, cfg.Workspace)
	}
}

func TestEnsureAtKeepsExistingConfig(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, config.DefaultFileName)
	if err := os.WriteFile(path, []byte("format: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(raw) != "format: json\n" {
		t.Fatalf("existing config overwritten: %q", raw)
	}
}

func TestSaveReport(t *testing.T) {
	l, err := EnsureAt(t.TempDir())
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}

	doc := report.Build("chapters/one.md", "Thus it was. Hence it is.")
	path, err := SaveReport(l, doc)
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "one-") {
		t.Fatalf("unexpected report name %s", path)
	}

	again, err := SaveReport(l, doc)
	if err != nil {
		t.Fatalf("save report again: %v", err)
	}
	if again != path {
		t.Fatalf("expected same report path, got %s and %s", path, again)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if loaded.Metrics.ConnectorCount != 2 || loaded.Source != "chapters/one.md" {
		t.Fatalf("unexpected loaded report: %+v", loaded)
	}
}

func TestReportNameForStdin(t *testing.T) {
	if got := reportName(""); !strings.HasPrefix(got, "stdin-") {
		t.Fatalf("unexpected name %s", got)
	}
}
