package slop

import "fmt"

type Category string

const (
	CategoryConnectors     Category = "connectors"
	CategoryHedging        Category = "hedging"
	CategoryUniversal      Category = "universal_quantifiers"
	CategoryTautologies    Category = "tautologies"
	CategoryIntensifiers   Category = "vague_intensifiers"
	CategoryPlatitudes     Category = "platitudes"
	CategoryAIPhrases      Category = "ai_phrases"
	CategoryEmoji          Category = "emoji"
	CategoryContradictions Category = "contradictions"
)

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryConnectors,
		CategoryHedging,
		CategoryUniversal,
		CategoryTautologies,
		CategoryIntensifiers,
		CategoryPlatitudes,
		CategoryAIPhrases,
		CategoryEmoji,
		CategoryContradictions,
	}
}

const (
	connectorThreshold  = 1.5
	lowHedgingThreshold = 1.0
	universalThreshold  = 3.0
	tautologyThreshold  = 2
	platitudeThreshold  = 0.5
	emojiCountThreshold = 3
)

const (
	NoTellsMessage     = "No major AI tells detected in deterministic metrics"
	ZeroHedgingMessage = "ZERO hedging language (absolute certainty)"
)

type Finding struct {
	Category Category `json:"category" yaml:"category"`
	Message  string   `json:"message" yaml:"message"`
}

// Verdict holds the findings in rule order. NoTells is set only when no rule
// fired, so callers never have to interpret an empty slice.
type Verdict struct {
	Findings []Finding `json:"findings" yaml:"findings"`
	NoTells  bool      `json:"no_tells" yaml:"no_tells"`
}

// Classify applies the fixed thresholds. Every rule is evaluated.
func Classify(m Metrics) Verdict {
	findings := []Finding{}
	add := func(c Category, format string, args ...any) {
		findings = append(findings, Finding{Category: c, Message: fmt.Sprintf(format, args...)})
	}

	if m.ConnectorPercentage > connectorThreshold {
		add(CategoryConnectors, "High connector density (%.1f%%)", m.ConnectorPercentage)
	}

	if m.HedgingCount == 0 {
		add(CategoryHedging, ZeroHedgingMessage)
	} else if m.HedgingPer100Words < lowHedgingThreshold {
		add(CategoryHedging, "Low hedging (%.1f per 100 words)", m.HedgingPer100Words)
	}

	if m.UniversalPer100Words > universalThreshold {
		add(CategoryUniversal, "High universal quantifiers (%.1f per 100 words)", m.UniversalPer100Words)
	}

	if m.TautologyCount > tautologyThreshold {
		add(CategoryTautologies, "Multiple tautologies (%d)", m.TautologyCount)
	}

	if m.PlatitudeDensity > platitudeThreshold {
		add(CategoryPlatitudes, "High platitude density (%.2f per sentence)", m.PlatitudeDensity)
	}

	if m.AIPhraseCount > 0 {
		add(CategoryAIPhrases, "Common AI phrases detected (%d)", m.AIPhraseCount)
	}

	if m.EmojiCount >= emojiCountThreshold || m.EmojiAsBullets {
		if m.EmojiAsBullets {
			add(CategoryEmoji, "Emoji overuse as structure (%d emojis, used as bullets)", m.EmojiCount)
		} else {
			add(CategoryEmoji, "Emoji overuse as structure (%d emojis)", m.EmojiCount)
		}
	}

	if m.ContradictionCount > 0 {
		add(CategoryContradictions, "Contradiction patterns detected (%d)", m.ContradictionCount)
	}

	return Verdict{Findings: findings, NoTells: len(findings) == 0}
}

// Tells is shorthand for the number of findings.
func (v Verdict) Tells() int {
	return len(v.Findings)
}
