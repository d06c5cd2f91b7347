package model

import "time"

// Breakdown records which scoring features fired during a classification
// run. It is stored on the snapshot for auditability.
type Breakdown struct {
	ExtractedCodesCount  int               `json:"extracted_codes_count"`
	ExtractedURLsCount   int               `json:"extracted_urls_count"`
	ResolvedDomainsCount int               `json:"resolved_domains_count"`
	HasCasinoMatch       bool              `json:"has_casino_match"`
	HasJurisdiction      bool              `json:"has_jurisdiction"`
	Validity             ValidityBreakdown `json:"validity_breakdown"`
}

// ValidityBreakdown itemizes the validity score components.
type ValidityBreakdown struct {
	HasCodeOrURL bool `json:"has_code_or_url"`
	HasBoth      bool `json:"has_both"`
	HasDomain    bool `json:"has_domain"`
	HasCasino    bool `json:"has_casino"`
	TextLengthOK bool `json:"text_length_ok"`
}

// ClassificationSnapshot is an immutable audit record of one classification
// run against one RawSubmission. Append-only: reclassification produces a
// new snapshot, never an update.
type ClassificationSnapshot struct {
	ID                  string    `json:"id"`
	SubmissionID        string    `json:"submission_id"`
	IsPromo             bool      `json:"is_promo"`
	Confidence          float64   `json:"confidence"`
	ExtractedCodes      []string  `json:"extracted_codes,omitempty"`
	ExtractedURLs       []string  `json:"extracted_urls,omitempty"`
	ResolvedDomains     []string  `json:"resolved_domains,omitempty"`
	GuessedCasino       string    `json:"guessed_casino,omitempty"`
	GuessedJurisdiction string    `json:"guessed_jurisdiction,omitempty"`
	Headline            string    `json:"proposed_headline"`
	Description         string    `json:"proposed_description"`
	Validity            float64   `json:"validity_score"`
	IsSpam              bool      `json:"is_spam"`
	IsDuplicate         bool      `json:"is_duplicate"`
	DuplicateOf         string    `json:"duplicate_of,omitempty"`
	ModelName           string    `json:"model_name"`
	ModelVersion        string    `json:"model_version"`
	Details             Breakdown `json:"details"`
	CreatedAt           time.Time `json:"created_at"`
}
