// Package extract provides the pure text-analysis stage of the drops
// pipeline: URL extraction, bonus-code candidate extraction, promo-type
// classification, headline/description synthesis, and spam detection.
// Nothing in this package performs I/O.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

var urlRe = regexp.MustCompile(`(?i)https?://[^\s]+`)

// URLs locates URL-shaped substrings in text, trimming trailing
// punctuation. Order follows first appearance; no limit on count.
func URLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.TrimRight(strings.TrimSpace(m), ".,;!?"))
	}
	return urls
}

// Code pattern families. Each is applied independently; results are
// merged, deduplicated and filtered below.
var codePatterns = []*regexp.Regexp{
	// Letters followed by digits: CODE123, BONUS456
	regexp.MustCompile(`\b[A-Z]{3,15}\d{2,10}\b`),
	// Long all-caps tokens: BONUSCODE
	regexp.MustCompile(`\b[A-Z]{4,20}\b`),
	// Interleaved letters/digits: CODE123BONUS
	regexp.MustCompile(`\b[A-Z]+\d+[A-Z]+\b`),
	// Optional dash between letters and digits: CODE-123
	regexp.MustCompile(`\b[A-Z]{3,15}-?\d{2,10}\b`),
	// Underscore or dash separated: CODE_123
	regexp.MustCompile(`\b[A-Z]{3,15}[_-]\d{2,10}\b`),
}

// Capturing patterns: the candidate is the first submatch group.
var codeGroupPatterns = []*regexp.Regexp{
	// Tokens following explicit keywords: "code: ABC123"
	regexp.MustCompile(`(?i)(?:code|promo|bonus|coupon)[\s:]+([A-Z0-9]{4,20})`),
	// Tokens inside quotes or brackets: "CODE123", [BONUS456]
	regexp.MustCompile(`["\[\(]([A-Z0-9]{4,20})["\]\)]`),
}

var pureDigitsRe = regexp.MustCompile(`^\d+$`)

// isExcludedCode filters common false positives: URL scheme prefixes,
// bare TLDs, and purely numeric tokens.
func isExcludedCode(code string) bool {
	if strings.HasPrefix(code, "HTTP") || strings.HasPrefix(code, "WWW") {
		return true
	}
	switch code {
	case "COM", "NET", "ORG":
		return true
	}
	return pureDigitsRe.MatchString(code)
}

// BonusCodeCandidates extracts distinct uppercase bonus-code candidates
// from text. Candidates must be 4-25 characters, contain at least one
// letter, and not match the false-positive denylist. The result is
// sorted ascending by length: shorter codes are more likely genuine and
// are tried first downstream.
func BonusCodeCandidates(text string) []string {
	seen := make(map[string]bool)
	var candidates []string

	add := func(raw string) {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if len(code) < 4 || len(code) > 25 {
			return
		}
		if isExcludedCode(code) {
			return
		}
		if !strings.ContainsAny(code, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			return
		}
		if seen[code] {
			return
		}
		seen[code] = true
		candidates = append(candidates, code)
	}

	for _, re := range codePatterns {
		for _, m := range re.FindAllString(text, -1) {
			add(m)
		}
	}
	for _, re := range codeGroupPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) < len(candidates[j])
	})
	return candidates
}
