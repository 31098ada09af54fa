package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"sloptastic/internal/slop"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatText     = "text"
)

type Options struct {
	NoColor bool
}

// Render writes docs in the requested format. Several documents become a
// JSON array, a multi-document YAML stream, or consecutive markdown/text
// sections.
func Render(w io.Writer, format string, docs []Document, opts Options) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		var v any = docs
		if len(docs) == 1 {
			v = docs[0]
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, d := range docs {
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
		return nil
	case FormatMarkdown, "":
		for i, d := range docs {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, Markdown(d)); err != nil {
				return fmt.Errorf("write markdown: %w", err)
			}
		}
		return nil
	case FormatText:
		for _, d := range docs {
			if err := Summary(w, d, opts); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type palette struct {
	title *color.Color
	label *color.Color
	bad   *color.Color
	good  *color.Color
	muted *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title: color.New(color.FgWhite, color.Bold),
		label: color.New(color.FgCyan),
		bad:   color.New(color.FgRed),
		good:  color.New(color.FgGreen),
		muted: color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.label, p.bad, p.good, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

// Summary writes a compact terminal view: statistics, headline rates and the
// verdict.
func Summary(w io.Writer, doc Document, opts Options) error {
	p := newPalette(opts.NoColor)
	m := doc.Metrics
	var b strings.Builder

	name := doc.Source
	if name == "" {
		name = "<stdin>"
	}
	b.WriteString(p.title.Sprint(name))
	b.WriteString(p.muted.Sprintf("  (catalog v%s)\n", doc.CatalogVersion))

	row := func(label, format string, args ...any) {
		b.WriteString("  ")
		b.WriteString(p.label.Sprintf("%-22s", label))
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteByte('\n')
	}
	row("words/sentences", "%d / %d (%.1f per sentence)", m.Stats.WordCount, m.Stats.SentenceCount, m.Stats.WordsPerSentence())
	for _, c := range slop.Categories() {
		row(categoryLabel(c), "%s", categoryValue(m, c))
	}

	if doc.Verdict.NoTells {
		b.WriteString(p.good.Sprintf("  ✓ %s\n", slop.NoTellsMessage))
	} else {
		for _, f := range doc.Verdict.Findings {
			b.WriteString(p.bad.Sprintf("  ✗ %s\n", f.Message))
		}
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func categoryLabel(c slop.Category) string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// categoryValue is the headline count and rate shown for one category.
func categoryValue(m slop.Metrics, c slop.Category) string {
	switch c {
	case slop.CategoryConnectors:
		return fmt.Sprintf("%d (%.2f%%)", m.ConnectorCount, m.ConnectorPercentage)
	case slop.CategoryHedging:
		return fmt.Sprintf("%d (%.2f per 100 words)", m.HedgingCount, m.HedgingPer100Words)
	case slop.CategoryUniversal:
		return fmt.Sprintf("%d (%.2f per 100 words)", m.UniversalCount, m.UniversalPer100Words)
	case slop.CategoryTautologies:
		return fmt.Sprintf("%d", m.TautologyCount)
	case slop.CategoryIntensifiers:
		return fmt.Sprintf("%d", m.IntensifierCount)
	case slop.CategoryPlatitudes:
		return fmt.Sprintf("%d (%.2f per sentence)", m.PlatitudeCount, m.PlatitudeDensity)
	case slop.CategoryAIPhrases:
		return fmt.Sprintf("%d", m.AIPhraseCount)
	case slop.CategoryEmoji:
		return fmt.Sprintf("%d (bullets: %s)", m.EmojiCount, yesNo(m.EmojiAsBullets))
	case slop.CategoryContradictions:
		return fmt.Sprintf("%d", m.ContradictionCount)
	default:
		return "n/a"
	}
}
