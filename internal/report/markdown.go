package report

import (
	"fmt"
	"slices"
	"strings"

	"sloptastic/internal/slop"
)

// byCountDesc returns a copy sorted for display. Ties keep catalog order.
func byCountDesc(in []slop.Match) []slop.Match {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b slop.Match) int {
		return b.Count - a.Count
	})
	return out
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Markdown renders the full metrics report.
func Markdown(doc Document) string {
	m := doc.Metrics
	s := m.Stats
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	matches := func(title string, items []slop.Match) {
		if len(items) == 0 {
			return
		}
		line("**%s**:", title)
		for _, it := range byCountDesc(items) {
			line("- '%s': %d", it.Term, it.Count)
		}
	}

	line("# Deterministic Slop Metrics Report")
	line("")
	if doc.Source != "" {
		line("**Source**: %s", doc.Source)
		line("")
	}

	line("## Text Statistics")
	line("")
	line("- **Word count**: %d", s.WordCount)
	line("- **Sentence count**: %d", s.SentenceCount)
	line("- **Character count**: %d", s.CharCount)
	line("- **Avg words/sentence**: %.1f", s.WordsPerSentence())
	line("- **Sentence length SD**: %.1f", s.SentenceLengthSD)
	line("")

	line("## 1. Connector Disease")
	line("")
	line("**Total connectors**: %d", m.ConnectorCount)
	line("**Percentage of text**: %.2f%%", m.ConnectorPercentage)
	line("**AI Tell**: >1.5%% indicates simulated coherence")
	line("")
	matches("Found connectors", m.ConnectorPhrases)
	line("")

	line("## 2. Hedging Language Absence")
	line("")
	line("**Total hedging words**: %d", m.HedgingCount)
	line("**Per 100 words**: %.2f", m.HedgingPer100Words)
	line("**AI Tell**: <1 per 100 words indicates low epistemic humility")
	line("")
	if len(m.HedgingWords) > 0 {
		matches("Found hedging words", m.HedgingWords)
	} else {
		line("**ZERO hedging words found** - absolute certainty throughout")
	}
	line("")

	line("## 3. Universal Quantifiers")
	line("")
	line("**Total universal quantifiers**: %d", m.UniversalCount)
	line("**Per 100 words**: %.2f", m.UniversalPer100Words)
	line("**AI Tell**: >3 per 100 words indicates absolutism")
	line("")
	matches("Found quantifiers", m.UniversalQuantifiers)
	line("")

	line("## 4. Definitional Tautologies")
	line("")
	line("**Total tautology patterns**: %d", m.TautologyCount)
	line("**AI Tell**: >2 instances suggests strawman correction habit")
	line("")
	if len(m.Tautologies) > 0 {
		line("**Found patterns**:")
		for _, p := range m.Tautologies {
			line("- %s", p)
		}
	}
	line("")

	line("## 5. Vague Intensifiers")
	line("")
	line("**Total vague intensifiers**: %d", m.IntensifierCount)
	line("**AI Tell**: High frequency indicates abstraction without specificity")
	line("")
	if len(m.VagueIntensifiers) > 0 {
		line("**Found patterns**:")
		for _, it := range byCountDesc(m.VagueIntensifiers) {
			line("- Pattern '%s': %d matches", it.Term, it.Count)
		}
	}
	line("")

	line("## 6. Platitude Density")
	line("")
	line("**Total platitudes detected**: %d", m.PlatitudeCount)
	line("**Platitudes per sentence**: %.2f", m.PlatitudeDensity)
	line("**AI Tell**: >0.5 per sentence (1 per 2 sentences) indicates vapid language")
	line("")
	matches("Found platitudes", m.Platitudes)
	line("")

	line("## 7. Common AI Phrases")
	line("")
	line("**Total AI phrases detected**: %d", m.AIPhraseCount)
	line("**AI Tell**: Presence of common AI opening/transition phrases")
	line("")
	matches("Found AI phrases", m.AIPhrases)
	line("")

	line("## 8. Emoji Overuse as Structure")
	line("")
	line("**Total emojis detected**: %d", m.EmojiCount)
	line("**Emojis as bullets**: %s", yesNo(m.EmojiAsBullets))
	line("**AI Tell**: >3 mechanical emojis or emojis as structural bullets")
	line("")
	if m.EmojiCount > 0 {
		if m.EmojiAsBullets {
			line("**Emojis detected as structural elements (bullet points)**")
		}
		if m.EmojiCount >= 3 {
			line("**High emoji count (%d) suggests mechanical usage**", m.EmojiCount)
		}
	}
	line("")

	line("## 9. Contradiction Patterns")
	line("")
	line("**Total contradictions**: %d", m.ContradictionCount)
	line("**AI Tell**: Claims of subtlety followed by obvious manifestations")
	line("")
	if len(m.Contradictions) > 0 {
		line("**Found contradictions**:")
		for _, c := range m.Contradictions {
			line("- %s", c)
		}
	}
	line("")

	line("## Summary of AI Tells")
	line("")
	if doc.Verdict.NoTells {
		line("✓ %s", slop.NoTellsMessage)
	} else {
		for _, f := range doc.Verdict.Findings {
			line("✗ %s", f.Message)
		}
	}

	line("")
	line("---")
	line("")
	line("**Note**: This report covers only deterministic metrics.")
	line("The following need parsing or NLP and are not measured here:")
	line("- Parallel construction density")
	line("- Concrete vs abstract noun ratio")
	line("- Chiasmus detection")
	line("- Emotional labor asymmetry")

	return b.String()
}
