// Package jurisdiction infers the regional eligibility tag for a
// classified promotion from the matched casino's registry flags and
// keyword families in the raw text.
package jurisdiction

import (
	"strings"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// Keyword families scanned in the raw text. The three sets are disjoint.
var (
	usaKeywords = []string{
		"usa", "us only", "united states", "sweeps", "sweepstakes",
		"sweeps coins", "sc casino", "us licensed", "us players",
		"america", "american", "states only",
	}
	cryptoKeywords = []string{
		"crypto", "cryptocurrency", "bitcoin", "btc", "ethereum", "eth",
		"solana", "sol", "usdt", "usdc", "crypto casino", "crypto gambling",
		"blockchain", "defi", "web3",
	}
	globalKeywords = []string{
		"global", "worldwide", "international", "everywhere", "all countries",
		"no restrictions", "anywhere",
	}
)

// Infer builds the ordered candidate tag list: registry-derived tags
// for the matched casino first, then text-derived tags not already
// present. The list is never empty.
func Infer(casino *model.Casino, text string) []string {
	var tags []string

	if casino != nil {
		if casino.SupportsSweeps {
			tags = append(tags, model.JurisdictionUSA)
		}
		if casino.SupportsCrypto {
			tags = append(tags, model.JurisdictionCrypto)
		}
		if !casino.SupportsSweeps && !casino.SupportsCrypto {
			tags = append(tags, model.JurisdictionEverywhere)
		}
	}

	lower := strings.ToLower(text)
	if containsAny(lower, usaKeywords) {
		tags = appendMissing(tags, model.JurisdictionUSA)
	}
	if containsAny(lower, cryptoKeywords) {
		tags = appendMissing(tags, model.JurisdictionCrypto)
	}
	if containsAny(lower, globalKeywords) {
		tags = appendMissing(tags, model.JurisdictionEverywhere)
	}

	if len(tags) == 0 {
		tags = append(tags, model.JurisdictionEverywhere)
	}
	return tags
}

// First returns the head of the candidate list. Downstream consumes a
// single tag even though several may be inferred; the full list is
// preserved on the promo candidate.
func First(tags []string) string {
	if len(tags) == 0 {
		return model.JurisdictionEverywhere
	}
	return tags[0]
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func appendMissing(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
