package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"sloptastic/internal/config"
)

const (
	ReportsDirName = "reports"
	HistoryDBName  = "history.db"
)

// Layout names the paths inside a workspace root.
type Layout struct {
	Root       string
	ReportsDir string
	ConfigPath string
	HistoryDB  string
}

func LayoutAt(base string) Layout {
	return Layout{
		Root:       base,
		ReportsDir: filepath.Join(base, ReportsDirName),
		ConfigPath: filepath.Join(base, config.DefaultFileName),
		HistoryDB:  filepath.Join(base, HistoryDBName),
	}
}

// EnsureAt creates the workspace directories and seeds a default config file
// when none exists.
func EnsureAt(base string) (Layout, error) {
	l := LayoutAt(base)
	for _, p := range []string{l.Root, l.ReportsDir} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return Layout{}, fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	if _, err := os.Stat(l.ConfigPath); os.IsNotExist(err) {
		defaults := config.Default()
		defaults.Workspace = base
		raw, marshalErr := defaults.Marshal()
		if marshalErr != nil {
			return Layout{}, marshalErr
		}
		if writeErr := os.WriteFile(l.ConfigPath, raw, 0o644); writeErr != nil {
			return Layout{}, fmt.Errorf("write config: %w", writeErr)
		}
	}

	return l, nil
}
