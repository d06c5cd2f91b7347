package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresCreateSubmission(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO submissions`).
		WithArgs(pgxmock.AnyArg(), "group_chat", "user-1", "use code SPINS100",
			[]string{}, []string{"SPINS100"}, pgxmock.AnyArg(), "pending", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sub, err := s.CreateSubmission(context.Background(), SubmissionInput{
		Origin:      model.OriginGroupChat,
		SubmitterID: "user-1",
		Text:        "use code SPINS100",
		Codes:       []string{"SPINS100"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, model.SubmissionPending, sub.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetSubmission_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM submissions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetSubmission(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMarkSubmissionProcessing_NotPending(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE submissions SET status = \$1, processed_at = \$2`).
		WithArgs("processing", pgxmock.AnyArg(), "sub-1", "pending").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.MarkSubmissionProcessing(context.Background(), "sub-1")
	assert.ErrorIs(t, err, ErrNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListPendingSubmissions(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "origin", "submitter_id", "text", "urls", "codes",
		"metadata", "status", "created_at", "processed_at",
	}).AddRow(
		"sub-1", "web_form", "user-1", "promo text", []string{}, []string{"SPINS100"},
		[]byte(nil), "pending", now, (*time.Time)(nil),
	)

	mock.ExpectQuery(`SELECT .+ FROM submissions WHERE status = \$1 ORDER BY created_at ASC`).
		WithArgs("pending", 5).
		WillReturnRows(rows)

	subs, err := s.ListPendingSubmissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, model.OriginWebForm, subs[0].Origin)
	assert.Equal(t, []string{"SPINS100"}, subs[0].Codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindDuplicateByText_NoMatch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	since := time.Now().Add(-7 * 24 * time.Hour)
	before := time.Now()

	mock.ExpectQuery(`SELECT id FROM submissions`).
		WithArgs("sub-1", since, before, "some text", "some text").
		WillReturnError(pgx.ErrNoRows)

	id, err := s.FindDuplicateByText(context.Background(), "sub-1", since, before, "some text", "some text")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindDuplicateByCodes(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	since := time.Now().Add(-7 * 24 * time.Hour)
	before := time.Now()

	mock.ExpectQuery(`SELECT sub.id FROM submissions sub`).
		WithArgs("sub-2", since, before, []string{"LUCKY777"}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("sub-1"))

	id, err := s.FindDuplicateByCodes(context.Background(), "sub-2", since, before, []string{"LUCKY777"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindDuplicateByCodes_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	// no codes means no query at all
	id, err := s.FindDuplicateByCodes(context.Background(), "sub-1", time.Now(), time.Now(), nil)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO snapshots`).
		WithArgs(
			pgxmock.AnyArg(), "sub-1", true, 0.9,
			[]string{}, []string{}, []string{},
			nil, nil,
			"", "", 0.0, false, false,
			nil, "rule-based-v1", "1.0.0",
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	snap := &model.ClassificationSnapshot{
		SubmissionID: "sub-1",
		IsPromo:      true,
		Confidence:   0.9,
		ModelName:    "rule-based-v1",
		ModelVersion: "1.0.0",
	}
	require.NoError(t, s.CreateSnapshot(context.Background(), snap))
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateCandidateReview_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE candidates SET review_status = \$1`).
		WithArgs("approved", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateCandidateReview(context.Background(), "missing", model.ReviewApproved)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListCandidates_JurisdictionFilter(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "submission_id", "snapshot_id", "headline", "description", "promo_type",
		"bonus_code", "promo_url", "resolved_domain", "casino_id", "jurisdiction_tags",
		"validity", "review_status", "created_at", "reviewed_at",
	}).AddRow(
		"cand-1", "sub-1", "snap-1", "Stake Bonus Code: SPINS100", "desc", "code",
		ptr("SPINS100"), (*string)(nil), ptr("stake.us"), ptr("casino-1"),
		[]string{model.JurisdictionUSA}, 0.8, "pending", now, (*time.Time)(nil),
	)

	mock.ExpectQuery(`SELECT .+ FROM candidates WHERE true AND review_status = \$1 AND \$2 = ANY\(jurisdiction_tags\)`).
		WithArgs("pending", model.JurisdictionUSA, 100).
		WillReturnRows(rows)

	cands, err := s.ListCandidates(context.Background(), CandidateFilter{
		ReviewStatus: model.ReviewPending,
		Jurisdiction: model.JurisdictionUSA,
	})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "SPINS100", cands[0].BonusCode)
	assert.Empty(t, cands[0].PromoURL)
	assert.Equal(t, []string{model.JurisdictionUSA}, cands[0].JurisdictionTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertCasinos(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_casinos"},
		[]string{"id", "name", "resolved_domain", "supports_us_sweeps", "supports_crypto"}).
		WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "casinos"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	n, err := s.UpsertCasinos(context.Background(), []model.Casino{
		{Name: "Stake", ResolvedDomain: "stake.com", SupportsCrypto: true},
		{Name: "Chumba", ResolvedDomain: "chumbacasino.com", SupportsSweeps: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr[T any](v T) *T { return &v }
