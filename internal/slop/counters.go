package slop

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is one catalog entry found in the text. Entries with no occurrences
// are never reported.
type Match struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// countPhrases counts literal occurrences of each phrase in lower, preserving
// catalog order.
func countPhrases(lower string, phrases []string) []Match {
	out := []Match{}
	for _, phrase := range phrases {
		if n := countLiteral(lower, phrase); n > 0 {
			out = append(out, Match{Term: phrase, Count: n})
		}
	}
	return out
}

// countLiteral is a fixed-string, non-overlapping, left-to-right search.
// An occurrence glued to a surrounding word character does not count, so
// "may" is not found inside "maybe".
func countLiteral(s, phrase string) int {
	if phrase == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], phrase)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(phrase)
		if standalone(s, start, end) {
			n++
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		i = start + size
	}
	return n
}

// standalone mirrors \b on both edges of s[start:end].
func standalone(s string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		first, _ := utf8.DecodeRuneInString(s[start:end])
		if isWordRune(before) && isWordRune(first) {
			return false
		}
	}
	if end < len(s) {
		after, _ := utf8.DecodeRuneInString(s[end:])
		last, _ := utf8.DecodeLastRuneInString(s[start:end])
		if isWordRune(after) && isWordRune(last) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func countPatterns(lower string, patterns []*pattern) []Match {
	out := []Match{}
	for _, p := range patterns {
		if n := len(p.re.FindAllStringIndex(lower, -1)); n > 0 {
			out = append(out, Match{Term: p.source, Count: n})
		}
	}
	return out
}

func total(matches []Match) int {
	n := 0
	for _, m := range matches {
		n += m.Count
	}
	return n
}
