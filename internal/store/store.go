package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = eris.New("store: not found")

// ErrNotPending is returned when a submission cannot enter processing
// because it is not in pending status. Classification is not re-entrant.
var ErrNotPending = eris.New("store: submission not pending")

// SubmissionInput carries the fields the intake boundary provides when
// persisting a new raw submission.
type SubmissionInput struct {
	Origin      model.Origin
	SubmitterID string
	Text        string
	URLs        []string
	Codes       []string
	Metadata    map[string]any
}

// SubmissionFilter specifies criteria for listing submissions.
type SubmissionFilter struct {
	Status model.SubmissionStatus
	Limit  int
	Offset int
}

// CandidateFilter specifies criteria for listing promo candidates. The
// review queue uses ReviewStatus pending plus the optional casino and
// jurisdiction filters.
type CandidateFilter struct {
	ReviewStatus model.ReviewStatus
	CasinoID     string
	Jurisdiction string
	Limit        int
	Offset       int
}

// Store defines the persistence interface for the drops pipeline.
type Store interface {
	// Submissions
	CreateSubmission(ctx context.Context, in SubmissionInput) (*model.RawSubmission, error)
	GetSubmission(ctx context.Context, id string) (*model.RawSubmission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.RawSubmission, error)
	// ListPendingSubmissions returns up to limit pending submissions,
	// oldest first.
	ListPendingSubmissions(ctx context.Context, limit int) ([]model.RawSubmission, error)
	// MarkSubmissionProcessing transitions pending → processing.
	// Returns ErrNotPending for any other current status.
	MarkSubmissionProcessing(ctx context.Context, id string) error
	UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus) error
	// ResetSubmission transitions error → pending so an operator can
	// trigger reprocessing.
	ResetSubmission(ctx context.Context, id string) error

	// Classification snapshots (append-only)
	CreateSnapshot(ctx context.Context, snap *model.ClassificationSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*model.ClassificationSnapshot, error)

	// Duplicate detection lookups. Both scan submissions created in
	// (since, before) exclusive of excludeID and return the earliest
	// matching submission id, or "" when none matches.
	FindDuplicateByText(ctx context.Context, excludeID string, since, before time.Time, text, prefix string) (string, error)
	FindDuplicateByCodes(ctx context.Context, excludeID string, since, before time.Time, codes []string) (string, error)

	// Promo candidates
	CreateCandidate(ctx context.Context, cand *model.PromoCandidate) error
	GetCandidate(ctx context.Context, id string) (*model.PromoCandidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]model.PromoCandidate, error)
	// UpdateCandidateReview records a review outcome. The pipeline never
	// calls this; it exists for the surrounding review workflow.
	UpdateCandidateReview(ctx context.Context, id string, status model.ReviewStatus) error

	// Casino registry
	ListCasinos(ctx context.Context) ([]model.Casino, error)
	UpsertCasinos(ctx context.Context, casinos []model.Casino) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
