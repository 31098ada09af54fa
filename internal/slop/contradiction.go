package slop

import "unicode/utf8"

// contradictionWindow is measured in code points, not bytes.
const contradictionWindow = 500

type ContradictionPair struct {
	Quiet string `json:"quiet" yaml:"quiet"`
	Loud  string `json:"loud" yaml:"loud"`
}

func (p ContradictionPair) String() string {
	return "'" + p.Quiet + "' followed by '" + p.Loud + "'"
}

// findContradictions checks only the first quiet marker of each rule. A loud
// marker cut by the window edge is missed.
func findContradictions(lower string) []ContradictionPair {
	out := []ContradictionPair{}
	for _, rule := range contradictionRules {
		loc := rule.quiet.re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		window := forwardWindow(lower, loc[1], contradictionWindow)
		loud := rule.loud.re.FindString(window)
		if loud == "" {
			continue
		}
		out = append(out, ContradictionPair{Quiet: lower[loc[0]:loc[1]], Loud: loud})
	}
	return out
}

// forwardWindow returns at most n code points of s starting at byte offset start.
func forwardWindow(s string, start, n int) string {
	end := start
	for i := 0; i < n && end < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[start:end]
}
