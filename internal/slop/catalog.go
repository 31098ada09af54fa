package slop

import (
	"regexp"
	"strings"
)

// CatalogVersion identifies the dictionary revision. Bump it whenever a
// category gains or loses an entry so stored reports stay comparable.
const CatalogVersion = "2"

// Coherence markers that simulate argument structure.
var connectors = []string{
	"that's why", "that is why", "this is why",
	"that's because", "that is because", "this is because",
	"that's when", "that is when", "this is when",
	"that's how", "that is how", "this is how",
	"therefore", "thus", "hence", "consequently",
}

// Epistemic softeners. Their absence is the signal.
var hedgingWords = []string{
	"maybe", "perhaps", "possibly", "probably",
	"might", "may", "could", "would", "should",
	"sometimes", "often", "usually", "generally",
	"tends to", "appears to", "seems to",
	"likely", "unlikely", "potential", "potentially",
	"arguably", "supposedly", "presumably",
}

var universalQuantifiers = []string{
	"every", "all", "always", "never", "none",
	"every single", "each and every", "without exception",
	"absolutely", "completely", "totally", "entirely",
	"forever", "eternal", "constant", "invariably",
}

var platitudes = []string{
	"stress is softened",
	"chaos becomes calm",
	"effort is turned into something meaningful",
	"growth feels natural",
	"multiply the life",
	"aligned with intention",
	"built with intention",
	"honor their role",
	"expanded, aligned, and built",
	"meets it at every level",
	"in ways money never could",
	"from the outside",
	"not flashy",
	"handled with care",
}

// Opening and transition phrases common in generated prose.
var aiPhrases = []string{
	"what impressed me most",
	"what struck me most",
	"what stands out most",
	"it's worth noting that",
	"it's important to note that",
	"it's interesting to note that",
	"at the end of the day",
	"the key takeaway is",
	"the bottom line is",
	"what's fascinating is",
	"what's remarkable is",
	"what's particularly interesting",
	"this is particularly important",
	"it's crucial to understand",
	"it's essential to recognize",
	"dive deep into",
	"delve into",
	"unpack this",
	"let's explore",
	"let's break this down",
	"here's the thing",
	"the reality is",
	"the truth is",
	"in today's world",
	"in today's landscape",
	"navigate the complexities",
	"it's no secret that",
	"goes without saying",
}

var vagueIntensifiers = compileAll(
	`real\s+\w+`,
	`true\s+\w+`,
	`natural\s+\w+`,
	`genuine\s+\w+`,
	`authentic\s+\w+`,
)

// Groups are subject, rejected predicate, replacement predicate.
var tautologyPatterns = compileAll(
	`(\w+)\s+(?:isn't|is not|aren't|are not)\s+just\s+(\w+),?\s+(?:it's|it is|they're|they are)\s+(\w+)`,
	`(\w+)\s+doesn't\s+just\s+(\w+),?\s+(?:she|he|it|they)\s+(\w+)`,
)

type contradictionRule struct {
	quiet *pattern
	loud  *pattern
}

// Claims of subtlety followed by an obvious manifestation.
var contradictionRules = []contradictionRule{
	{
		quiet: compile(`(quiet|subtle|not flashy|understated|modest)`),
		loud:  compile(`(shows up in|it's felt in|manifests in|appears in)`),
	},
}

var (
	emojiPattern       = regexp.MustCompile(`:[a-z_]+:|[\x{1F300}-\x{1F9FF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]`)
	// Indentation may use any Unicode space, including NBSP and U+3000.
	emojiBulletPattern = regexp.MustCompile(`(?m)(^|\n)[\s\v\p{Zs}]*(?::[a-z_]+:|[\x{1F300}-\x{1F9FF}])`)
)

// pattern keeps the authored source next to the compiled form so results
// can report the entry exactly as it appears in the catalog.
type pattern struct {
	source string
	re     *regexp.Regexp
}

// Go's \w is ASCII only; words in the catalog follow the tokenizer instead.
const unicodeWord = `[\p{L}\p{N}_]`

func compile(source string) *pattern {
	return &pattern{
		source: source,
		re:     regexp.MustCompile(strings.ReplaceAll(source, `\w`, unicodeWord)),
	}
}

func compileAll(sources ...string) []*pattern {
	out := make([]*pattern, 0, len(sources))
	for _, s := range sources {
		out = append(out, compile(s))
	}
	return out
}

// CatalogSnapshot is a copy of the dictionaries. Mutating it has no effect
// on analysis.
type CatalogSnapshot struct {
	Version              string              `json:"version" yaml:"version"`
	Connectors           []string            `json:"connectors" yaml:"connectors"`
	HedgingWords         []string            `json:"hedging_words" yaml:"hedging_words"`
	UniversalQuantifiers []string            `json:"universal_quantifiers" yaml:"universal_quantifiers"`
	VagueIntensifiers    []string            `json:"vague_intensifiers" yaml:"vague_intensifiers"`
	Platitudes           []string            `json:"platitudes" yaml:"platitudes"`
	AIPhrases            []string            `json:"ai_phrases" yaml:"ai_phrases"`
	TautologyPatterns    []string            `json:"tautology_patterns" yaml:"tautology_patterns"`
	ContradictionPairs   []ContradictionPair `json:"contradiction_pairs" yaml:"contradiction_pairs"`
	EmojiPattern         string              `json:"emoji_pattern" yaml:"emoji_pattern"`
}

func Catalog() CatalogSnapshot {
	pairs := make([]ContradictionPair, 0, len(contradictionRules))
	for _, r := range contradictionRules {
		pairs = append(pairs, ContradictionPair{Quiet: r.quiet.source, Loud: r.loud.source})
	}
	return CatalogSnapshot{
		Version:              CatalogVersion,
		Connectors:           clone(connectors),
		HedgingWords:         clone(hedgingWords),
		UniversalQuantifiers: clone(universalQuantifiers),
		VagueIntensifiers:    sources(vagueIntensifiers),
		Platitudes:           clone(platitudes),
		AIPhrases:            clone(aiPhrases),
		TautologyPatterns:    sources(tautologyPatterns),
		ContradictionPairs:   pairs,
		EmojiPattern:         emojiPattern.String(),
	}
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func sources(patterns []*pattern) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.source)
	}
	return out
}
