package slop

// extractTautologies rebuilds every "X isn't just Y, it's Z" construction in a
// fixed display form. The same span matched by two patterns counts twice.
func extractTautologies(lower string) []string {
	out := []string{}
	for _, p := range tautologyPatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			out = append(out, m[2]+" isn't just "+m[1]+", it's "+m[3])
		}
	}
	return out
}
