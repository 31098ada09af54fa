package slop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeConnectorAndHedgingScenario(t *testing.T) {
	m := Analyze("Therefore, she succeeded. Maybe it was luck.")

	require.Equal(t, 7, m.Stats.WordCount)
	require.Equal(t, 2, m.Stats.SentenceCount)

	assert.Equal(t, []Match{{Term: "therefore", Count: 1}}, m.ConnectorPhrases)
	assert.InDelta(t, 100.0/7.0, m.ConnectorPercentage, 1e-9)

	assert.Equal(t, []Match{{Term: "maybe", Count: 1}}, m.HedgingWords)
	assert.Equal(t, 1, m.HedgingCount)
	assert.InDelta(t, 14.2857, m.HedgingPer100Words, 1e-3)
}

func TestAnalyzeTautologyReconstruction(t *testing.T) {
	m := Analyze("Growth isn't just progress, it's transformation.")

	require.Equal(t, 1, m.TautologyCount)
	assert.Equal(t, []string{"progress isn't just growth, it's transformation"}, m.Tautologies)
}

func TestAnalyzeTautologyVariantsAreNotDeduplicated(t *testing.T) {
	text := "Leadership is not just management, it is vision. " +
		"Teams aren't just groups, they're families. " +
		"She doesn't just lead, she inspires. " +
		"Leadership is not just management, it is vision."
	m := Analyze(text)

	assert.Equal(t, []string{
		"management isn't just leadership, it's vision",
		"groups isn't just teams, it's families",
		"management isn't just leadership, it's vision",
		"lead isn't just she, it's inspires",
	}, m.Tautologies)
	assert.Equal(t, 4, m.TautologyCount)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	m := Analyze("")

	assert.Equal(t, TextStats{}, m.Stats)
	assert.Zero(t, m.ConnectorPercentage)
	assert.Zero(t, m.HedgingPer100Words)
	assert.Zero(t, m.UniversalPer100Words)
	assert.Zero(t, m.PlatitudeDensity)
	assert.Zero(t, m.Stats.WordsPerSentence())
	assert.Empty(t, m.ConnectorPhrases)
	assert.Empty(t, m.Tautologies)
	assert.Empty(t, m.Contradictions)
	assert.Zero(t, m.EmojiCount)
	assert.False(t, m.EmojiAsBullets)
}

func TestAnalyzeWithoutSentenceTerminator(t *testing.T) {
	m := Analyze("it was not flashy and every piece was handled with care")

	// The whole text is one unterminated segment.
	require.Equal(t, 1, m.Stats.SentenceCount)
	require.Equal(t, 11, m.Stats.WordCount)
	assert.Equal(t, 2, m.PlatitudeCount)
	assert.InDelta(t, 2.0, m.PlatitudeDensity, 1e-9)
	assert.InDelta(t, 11.0, m.Stats.WordsPerSentence(), 1e-9)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	text := strings.Repeat("What struck me most is that real change always shows up in quiet ways. 🚀\n", 20)
	a := Analyze(text)
	b := Analyze(text)
	assert.Equal(t, a, b)
}

func TestAnalyzeOmitsAbsentCatalogEntries(t *testing.T) {
	m := Analyze("Perhaps the river was cold. It usually is in spring.")

	for _, group := range [][]Match{m.ConnectorPhrases, m.HedgingWords, m.UniversalQuantifiers, m.Platitudes, m.AIPhrases, m.VagueIntensifiers} {
		for _, match := range group {
			assert.Positive(t, match.Count, "entry %q reported with zero count", match.Term)
		}
	}
	assert.Equal(t, []Match{{Term: "perhaps", Count: 1}, {Term: "usually", Count: 1}}, m.HedgingWords)
	assert.Empty(t, m.ConnectorPhrases)
}

func TestAnalyzeCountsAreMonotonic(t *testing.T) {
	text := "The bottom line is simple."
	prev := 0
	for i := 0; i < 5; i++ {
		m := Analyze(text)
		assert.GreaterOrEqual(t, m.AIPhraseCount, prev)
		prev = m.AIPhraseCount
		text += " The bottom line is simple."
	}
	assert.Equal(t, 5, prev)
}

func TestAnalyzeIsCaseInsensitive(t *testing.T) {
	m := Analyze("AT THE END OF THE DAY, it's Worth Noting That nothing changed.")

	assert.Equal(t, []Match{
		{Term: "it's worth noting that", Count: 1},
		{Term: "at the end of the day", Count: 1},
	}, m.AIPhrases)
}

func TestAnalyzeVagueIntensifiers(t *testing.T) {
	m := Analyze("A real connection, true growth and a genuine   smile.")

	assert.Equal(t, []Match{
		{Term: `real\s+\w+`, Count: 1},
		{Term: `true\s+\w+`, Count: 1},
		{Term: `genuine\s+\w+`, Count: 1},
	}, m.VagueIntensifiers)
	assert.Equal(t, 3, m.IntensifierCount)
}

func TestAnalyzeUniversalRate(t *testing.T) {
	m := Analyze("They always win. They never lose. Everything is absolutely fine.")

	assert.Equal(t, []Match{
		{Term: "always", Count: 1},
		{Term: "never", Count: 1},
		{Term: "absolutely", Count: 1},
	}, m.UniversalQuantifiers)
	assert.InDelta(t, 3.0/10.0*100, m.UniversalPer100Words, 1e-9)
}

func TestAnalyzeDoesNotMutateCatalog(t *testing.T) {
	before := Catalog()
	m := Analyze("Therefore, it is what it is.")
	m.ConnectorPhrases[0].Term = "mutated"
	snapshot := Catalog()
	snapshot.Connectors[0] = "mutated"

	assert.Equal(t, before, Catalog())
}
