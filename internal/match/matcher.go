// Package match resolves a domain and/or raw text against the casino
// registry. Matching is staged from strict to fuzzy; the first hit wins
// and registry iteration order breaks ties.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// foldTransform strips diacritics so registry brand names like
// "Café Casino" match their ASCII spellings in submissions.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Casino finds the best registry entry for a resolved domain and/or the
// raw submission text. Stages, first hit wins:
//
//  1. exact normalized-domain equality
//  2. shared last-two-label suffix, or one normalized domain containing
//     the other (stake.com matches stake.us)
//  3. full registry name appearing in the text
//  4. word-level fuzzy match between registry name words (>=3 chars)
//     and text words
//
// Returns nil when nothing matches.
func Casino(domain, text string, registry []model.Casino) *model.Casino {
	if domain == "" && text == "" {
		return nil
	}

	normalized := NormalizeDomain(domain)

	if normalized != "" {
		for i := range registry {
			entry := NormalizeDomain(registry[i].ResolvedDomain)
			if entry != "" && entry == normalized {
				return &registry[i]
			}
		}

		parts := strings.Split(normalized, ".")
		for i := range registry {
			entry := NormalizeDomain(registry[i].ResolvedDomain)
			if entry == "" {
				continue
			}
			entryParts := strings.Split(entry, ".")
			if len(parts) >= 2 && len(entryParts) >= 2 {
				if parts[len(parts)-2] == entryParts[len(entryParts)-2] {
					return &registry[i]
				}
			}
			if strings.Contains(normalized, entry) || strings.Contains(entry, normalized) {
				return &registry[i]
			}
		}
	}

	if text == "" {
		return nil
	}

	lower := foldName(strings.ToLower(text))
	for i := range registry {
		if strings.Contains(lower, foldName(strings.ToLower(registry[i].Name))) {
			return &registry[i]
		}
	}

	textWords := strings.Fields(lower)
	for i := range registry {
		for _, nameWord := range strings.Fields(foldName(strings.ToLower(registry[i].Name))) {
			if len(nameWord) < 3 {
				continue
			}
			for _, tw := range textWords {
				if strings.Contains(tw, nameWord) || strings.Contains(nameWord, tw) {
					return &registry[i]
				}
			}
		}
	}

	return nil
}

// NormalizeDomain lower-cases a domain or URL, stripping protocol,
// leading www., and any path.
func NormalizeDomain(d string) string {
	if d == "" {
		return ""
	}
	d = strings.ToLower(strings.TrimSpace(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	return d
}

func foldName(s string) string {
	out, _, err := transform.String(foldTransform, s)
	if err != nil {
		return s
	}
	return out
}
