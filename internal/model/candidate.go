package model

import "time"

// PromoType describes what a candidate promotion consists of.
type PromoType string

const (
	PromoTypeCode     PromoType = "code"
	PromoTypeURL      PromoType = "url"
	PromoTypeHybrid   PromoType = "hybrid"
	PromoTypeInfoOnly PromoType = "info_only"
)

// ReviewStatus is the human-review state of a candidate. The pipeline
// only ever creates candidates in ReviewPending; transitions happen in
// the surrounding review workflow.
type ReviewStatus string

const (
	ReviewPending        ReviewStatus = "pending"
	ReviewApproved       ReviewStatus = "approved"
	ReviewDenied         ReviewStatus = "denied"
	ReviewMarkedNonPromo ReviewStatus = "marked_non_promo"
)

// ValidReviewStatus reports whether s is a review outcome the surrounding
// workflow may set.
func ValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewApproved, ReviewDenied, ReviewMarkedNonPromo:
		return true
	}
	return false
}

// PromoCandidate is a classified promotion queued for human review.
// Created only when its snapshot passed the promo/spam/duplicate gate;
// every candidate traces back to a snapshot and a raw submission.
type PromoCandidate struct {
	ID               string       `json:"id"`
	SubmissionID     string       `json:"submission_id"`
	SnapshotID       string       `json:"snapshot_id"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	PromoType        PromoType    `json:"promo_type"`
	BonusCode        string       `json:"bonus_code,omitempty"`
	PromoURL         string       `json:"promo_url,omitempty"`
	ResolvedDomain   string       `json:"resolved_domain,omitempty"`
	CasinoID         string       `json:"casino_id,omitempty"`
	JurisdictionTags []string     `json:"jurisdiction_tags"`
	Validity         float64      `json:"validity_score"`
	ReviewStatus     ReviewStatus `json:"review_status"`
	CreatedAt        time.Time    `json:"created_at"`
	ReviewedAt       *time.Time   `json:"reviewed_at,omitempty"`
}

// ClassifyResult is the outcome of one classification run: the snapshot
// that was persisted and the candidate, if the gate passed.
type ClassifyResult struct {
	Submission *RawSubmission          `json:"submission"`
	Snapshot   *ClassificationSnapshot `json:"snapshot"`
	Candidate  *PromoCandidate         `json:"candidate,omitempty"`
}
