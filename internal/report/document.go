package report

import (
	"time"

	"sloptastic/internal/slop"
)

// Document is one analysed input together with its verdict. It is the unit
// every renderer, the history store and the HTTP and MCP surfaces exchange.
type Document struct {
	Source         string       `json:"source" yaml:"source"`
	CatalogVersion string       `json:"catalog_version" yaml:"catalog_version"`
	AnalyzedAt     time.Time    `json:"analyzed_at" yaml:"analyzed_at"`
	Metrics        slop.Metrics `json:"metrics" yaml:"metrics"`
	Verdict        slop.Verdict `json:"verdict" yaml:"verdict"`
}

// Build analyses text and classifies the result.
func Build(source, text string) Document {
	m := slop.Analyze(text)
	return Document{
		Source:         source,
		CatalogVersion: slop.CatalogVersion,
		AnalyzedAt:     time.Now().UTC(),
		Metrics:        m,
		Verdict:        slop.Classify(m),
	}
}
