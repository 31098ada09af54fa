package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sloptastic/internal/report"
)

// SaveReport writes doc as JSON under the reports directory. The file name
// is derived from the source so re-analysing a file replaces its report.
func SaveReport(l Layout, doc report.Document) (string, error) {
	name := reportName(doc.Source)
	path := filepath.Join(l.ReportsDir, name)
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// LoadReport reads a report previously written by SaveReport.
func LoadReport(path string) (report.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return report.Document{}, fmt.Errorf("read report: %w", err)
	}
	var doc report.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return report.Document{}, fmt.Errorf("decode report: %w", err)
	}
	return doc, nil
}

func reportName(source string) string {
	base := sanitizeName(source)
	return base + "-" + sourceHash(source) + ".json"
}

func sourceHash(source string) string {
	trimmed := strings.TrimSpace(source)
	if abs, err := filepath.Abs(trimmed); err == nil && trimmed != "" {
		trimmed = abs
	}
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeName(source string) string {
	base := filepath.Base(strings.TrimSpace(source))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "stdin"
	}
	return strings.ReplaceAll(base, "..", "")
}
