// Package score computes the promo confidence and data validity scores
// for a classification run. Both are pure functions of already-extracted
// artifacts and always land in [0, 1].
package score

import (
	"strings"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// Inputs bundles the artifacts the scorer consumes.
type Inputs struct {
	Text    string
	Codes   []string
	URLs    []string
	Domains []string
	Casino  *model.Casino
}

// IsPromo applies the base promo/non-promo decision: any extracted code
// or URL qualifies, as does text over 20 characters mentioning one of
// the literal promo keywords.
func IsPromo(in Inputs) bool {
	if len(in.Codes) > 0 || len(in.URLs) > 0 {
		return true
	}
	if len(in.Text) <= 20 {
		return false
	}
	lower := strings.ToLower(in.Text)
	return strings.Contains(lower, "bonus") ||
		strings.Contains(lower, "code") ||
		strings.Contains(lower, "promo")
}

// Confidence scores how likely the submission is a promotion at all.
// Base 0.5, +0.2 per extracted code/URL presence, +0.1 for a casino
// match, capped at 1.0.
func Confidence(in Inputs) float64 {
	s := 0.5
	if len(in.Codes) > 0 {
		s += 0.2
	}
	if len(in.URLs) > 0 {
		s += 0.2
	}
	if in.Casino != nil {
		s += 0.1
	}
	return clamp(s)
}

// Validity scores how complete and trustworthy the extracted data is.
func Validity(in Inputs) float64 {
	s := 0.0
	hasCodes := len(in.Codes) > 0
	hasURLs := len(in.URLs) > 0
	if hasCodes || hasURLs {
		s += 0.4
	}
	if hasCodes && hasURLs {
		s += 0.2
	}
	if len(in.Domains) > 0 {
		s += 0.2
	}
	if in.Casino != nil {
		s += 0.2
	}
	if n := len(in.Text); n >= 20 && n <= 500 {
		s += 0.1
	}
	return clamp(s)
}

// NewBreakdown records which features fired, for the snapshot audit trail.
func NewBreakdown(in Inputs, jurisdiction string) model.Breakdown {
	hasCodes := len(in.Codes) > 0
	hasURLs := len(in.URLs) > 0
	return model.Breakdown{
		ExtractedCodesCount:  len(in.Codes),
		ExtractedURLsCount:   len(in.URLs),
		ResolvedDomainsCount: len(in.Domains),
		HasCasinoMatch:       in.Casino != nil,
		HasJurisdiction:      jurisdiction != "",
		Validity: model.ValidityBreakdown{
			HasCodeOrURL: hasCodes || hasURLs,
			HasBoth:      hasCodes && hasURLs,
			HasDomain:    len(in.Domains) > 0,
			HasCasino:    in.Casino != nil,
			TextLengthOK: len(in.Text) >= 20 && len(in.Text) <= 500,
		},
	}
}

func clamp(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < 0.0 {
		return 0.0
	}
	return s
}
