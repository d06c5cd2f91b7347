package extract

import "regexp"

var (
	capsRunRe  = regexp.MustCompile(`[A-Z]{20,}`)
	multiURLRe = regexp.MustCompile(`http.*http.*http`)
	hypeRe     = regexp.MustCompile(`(?i)(free|win|click|now){3,}`)
)

// IsSpam reports whether text trips any spam heuristic: a single
// character repeated more than ten times in a row, a run of twenty or
// more uppercase letters, three or more URL-shaped substrings crammed
// together, or hype words repeated back to back.
func IsSpam(text string) bool {
	if hasRepeatedRun(text, 11) {
		return true
	}
	return capsRunRe.MatchString(text) ||
		multiURLRe.MatchString(text) ||
		hypeRe.MatchString(text)
}

// hasRepeatedRun reports whether any rune occurs at least n times
// consecutively. Done by hand since RE2 has no backreferences.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
