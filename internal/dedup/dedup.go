// Package dedup detects resubmissions of recently seen promo drops.
package dedup

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// prefixLen is the number of leading characters used for fuzzy text matching.
const prefixLen = 50

// Lookup is the subset of the store the detector queries.
type Lookup interface {
	FindDuplicateByText(ctx context.Context, excludeID string, since, before time.Time, text, prefix string) (string, error)
	FindDuplicateByCodes(ctx context.Context, excludeID string, since, before time.Time, codes []string) (string, error)
}

// Detector checks new submissions against a sliding window of earlier ones.
type Detector struct {
	lookup Lookup
	window time.Duration
}

// New creates a Detector with the given window. A non-positive window
// defaults to 7 days.
func New(lookup Lookup, window time.Duration) *Detector {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return &Detector{lookup: lookup, window: window}
}

// Check returns the id of an earlier submission this one duplicates, or ""
// when none is found. Only submissions created before sub within the window
// are considered, so the earlier of a duplicate pair is never flagged.
func (d *Detector) Check(ctx context.Context, sub *model.RawSubmission, codes []string) (string, error) {
	since := sub.CreatedAt.Add(-d.window)
	before := sub.CreatedAt

	prefix := sub.Text
	if runes := []rune(prefix); len(runes) > prefixLen {
		prefix = string(runes[:prefixLen])
	}

	id, err := d.lookup.FindDuplicateByText(ctx, sub.ID, since, before, sub.Text, prefix)
	if err != nil {
		return "", eris.Wrap(err, "dedup: text lookup")
	}
	if id != "" {
		return id, nil
	}

	if len(codes) > 0 {
		id, err = d.lookup.FindDuplicateByCodes(ctx, sub.ID, since, before, codes)
		if err != nil {
			return "", eris.Wrap(err, "dedup: code lookup")
		}
	}
	return id, nil
}
