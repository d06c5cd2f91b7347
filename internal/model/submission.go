package model

import (
	"time"
)

// SubmissionStatus represents the processing state of a raw submission.
type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionProcessing SubmissionStatus = "processing"
	SubmissionClassified SubmissionStatus = "classified"
	SubmissionError      SubmissionStatus = "error"
)

// Origin identifies the intake channel a submission arrived through.
type Origin string

const (
	OriginGroupChat     Origin = "group_chat"
	OriginDirectMessage Origin = "direct_message"
	OriginTelegram      Origin = "telegram"
	OriginWebForm       Origin = "web_form"
)

// ValidOrigin reports whether o is a member of the closed origin set.
// Intake boundaries validate before anything is persisted.
func ValidOrigin(o Origin) bool {
	switch o {
	case OriginGroupChat, OriginDirectMessage, OriginTelegram, OriginWebForm:
		return true
	}
	return false
}

// RawSubmission is one unprocessed text fragment from an intake channel.
// It is created once at intake and mutated only by status transitions.
type RawSubmission struct {
	ID          string           `json:"id"`
	Origin      Origin           `json:"origin"`
	SubmitterID string           `json:"submitter_id"`
	Text        string           `json:"text"`
	URLs        []string         `json:"urls,omitempty"`
	Codes       []string         `json:"codes,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	Status      SubmissionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
}
