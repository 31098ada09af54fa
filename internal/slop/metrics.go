package slop

import "strings"

// Metrics is the full deterministic measurement of one text. Analyze builds
// a new value on every call; nothing in it is shared with the catalog.
type Metrics struct {
	Stats TextStats `json:"stats" yaml:"stats"`

	ConnectorPhrases    []Match `json:"connector_phrases" yaml:"connector_phrases"`
	ConnectorCount      int     `json:"connector_count" yaml:"connector_count"`
	ConnectorPercentage float64 `json:"connector_percentage" yaml:"connector_percentage"`

	HedgingWords       []Match `json:"hedging_words" yaml:"hedging_words"`
	HedgingCount       int     `json:"hedging_count" yaml:"hedging_count"`
	HedgingPer100Words float64 `json:"hedging_per_100_words" yaml:"hedging_per_100_words"`

	UniversalQuantifiers []Match `json:"universal_quantifiers" yaml:"universal_quantifiers"`
	UniversalCount       int     `json:"universal_count" yaml:"universal_count"`
	UniversalPer100Words float64 `json:"universal_per_100_words" yaml:"universal_per_100_words"`

	Tautologies    []string `json:"tautology_patterns" yaml:"tautology_patterns"`
	TautologyCount int      `json:"tautology_count" yaml:"tautology_count"`

	VagueIntensifiers []Match `json:"vague_intensifiers" yaml:"vague_intensifiers"`
	IntensifierCount  int     `json:"intensifier_count" yaml:"intensifier_count"`

	Platitudes       []Match `json:"detected_platitudes" yaml:"detected_platitudes"`
	PlatitudeCount   int     `json:"platitude_count" yaml:"platitude_count"`
	PlatitudeDensity float64 `json:"platitude_density" yaml:"platitude_density"`

	AIPhrases     []Match `json:"common_ai_phrases" yaml:"common_ai_phrases"`
	AIPhraseCount int     `json:"ai_phrase_count" yaml:"ai_phrase_count"`

	EmojiCount     int  `json:"emoji_count" yaml:"emoji_count"`
	EmojiAsBullets bool `json:"emoji_as_bullets" yaml:"emoji_as_bullets"`

	Contradictions     []ContradictionPair `json:"contradiction_pairs" yaml:"contradiction_pairs"`
	ContradictionCount int                 `json:"contradiction_count" yaml:"contradiction_count"`
}

// Analyze runs every detector over text. It never fails: empty input yields
// an all-zero result.
func Analyze(text string) Metrics {
	stats := computeStats(text)
	lower := strings.ToLower(text)

	m := Metrics{Stats: stats}

	m.ConnectorPhrases = countPhrases(lower, connectors)
	m.ConnectorCount = total(m.ConnectorPhrases)
	m.ConnectorPercentage = per100(m.ConnectorCount, stats.WordCount)

	m.HedgingWords = countPhrases(lower, hedgingWords)
	m.HedgingCount = total(m.HedgingWords)
	m.HedgingPer100Words = per100(m.HedgingCount, stats.WordCount)

	m.UniversalQuantifiers = countPhrases(lower, universalQuantifiers)
	m.UniversalCount = total(m.UniversalQuantifiers)
	m.UniversalPer100Words = per100(m.UniversalCount, stats.WordCount)

	m.Tautologies = extractTautologies(lower)
	m.TautologyCount = len(m.Tautologies)

	m.VagueIntensifiers = countPatterns(lower, vagueIntensifiers)
	m.IntensifierCount = total(m.VagueIntensifiers)

	m.Platitudes = countPhrases(lower, platitudes)
	m.PlatitudeCount = total(m.Platitudes)
	m.PlatitudeDensity = perSentence(m.PlatitudeCount, stats.SentenceCount)

	m.AIPhrases = countPhrases(lower, aiPhrases)
	m.AIPhraseCount = total(m.AIPhrases)

	m.EmojiCount, m.EmojiAsBullets = countEmoji(text)

	m.Contradictions = findContradictions(lower)
	m.ContradictionCount = len(m.Contradictions)

	return m
}
