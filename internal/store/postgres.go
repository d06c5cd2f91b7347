package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/gamblecodez/drops-cli/internal/db"
	"github.com/gamblecodez/drops-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot intake and classification paths.
var preparedStatements = map[string]string{
	"insert_submission": `INSERT INTO submissions (id, origin, submitter_id, text, urls, codes, metadata, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
	"get_submission":    `SELECT id, origin, submitter_id, text, urls, codes, metadata, status, created_at, processed_at FROM submissions WHERE id = $1`,
	"mark_processing":   `UPDATE submissions SET status = $1, processed_at = $2 WHERE id = $3 AND status = $4`,
	"update_status":     `UPDATE submissions SET status = $1 WHERE id = $2`,
	"list_pending":      `SELECT id, origin, submitter_id, text, urls, codes, metadata, status, created_at, processed_at FROM submissions WHERE status = $1 ORDER BY created_at ASC LIMIT $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need
// direct query access (e.g., bulk registry loads).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	origin       TEXT NOT NULL,
	submitter_id TEXT NOT NULL,
	text         TEXT NOT NULL,
	urls         TEXT[] NOT NULL DEFAULT '{}',
	codes        TEXT[] NOT NULL DEFAULT '{}',
	metadata     JSONB,
	status       TEXT NOT NULL DEFAULT 'pending',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	processed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS snapshots (
	id                   TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	submission_id        TEXT NOT NULL REFERENCES submissions(id),
	is_promo             BOOLEAN NOT NULL,
	confidence           DOUBLE PRECISION NOT NULL,
	extracted_codes      TEXT[] NOT NULL DEFAULT '{}',
	extracted_urls       TEXT[] NOT NULL DEFAULT '{}',
	resolved_domains     TEXT[] NOT NULL DEFAULT '{}',
	guessed_casino       TEXT,
	guessed_jurisdiction TEXT,
	headline             TEXT NOT NULL,
	description          TEXT NOT NULL,
	validity             DOUBLE PRECISION NOT NULL,
	is_spam              BOOLEAN NOT NULL,
	is_duplicate         BOOLEAN NOT NULL,
	duplicate_of         TEXT,
	model_name           TEXT NOT NULL,
	model_version        TEXT NOT NULL,
	details              JSONB NOT NULL DEFAULT '{}',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS candidates (
	id                TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	submission_id     TEXT NOT NULL REFERENCES submissions(id),
	snapshot_id       TEXT NOT NULL REFERENCES snapshots(id),
	headline          TEXT NOT NULL,
	description       TEXT NOT NULL,
	promo_type        TEXT NOT NULL,
	bonus_code        TEXT,
	promo_url         TEXT,
	resolved_domain   TEXT,
	casino_id         TEXT,
	jurisdiction_tags TEXT[] NOT NULL DEFAULT '{}',
	validity          DOUBLE PRECISION NOT NULL,
	review_status     TEXT NOT NULL DEFAULT 'pending',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	reviewed_at       TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS casinos (
	id                 TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name               TEXT NOT NULL UNIQUE,
	resolved_domain    TEXT,
	supports_us_sweeps BOOLEAN NOT NULL DEFAULT false,
	supports_crypto    BOOLEAN NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_submission ON snapshots(submission_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_codes ON snapshots USING GIN (extracted_codes);
CREATE INDEX IF NOT EXISTS idx_candidates_review ON candidates(review_status, created_at);
CREATE INDEX IF NOT EXISTS idx_candidates_casino ON candidates(casino_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// --- submissions ---

func (s *PostgresStore) CreateSubmission(ctx context.Context, in SubmissionInput) (*model.RawSubmission, error) {
	sub := &model.RawSubmission{
		ID:          uuid.New().String(),
		Origin:      in.Origin,
		SubmitterID: in.SubmitterID,
		Text:        in.Text,
		URLs:        in.URLs,
		Codes:       in.Codes,
		Metadata:    in.Metadata,
		Status:      model.SubmissionPending,
		CreatedAt:   time.Now().UTC(),
	}

	var metaJSON []byte
	if sub.Metadata != nil {
		var err error
		metaJSON, err = json.Marshal(sub.Metadata)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal metadata")
		}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (id, origin, submitter_id, text, urls, codes, metadata, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sub.ID, string(sub.Origin), sub.SubmitterID, sub.Text,
		emptyIfNil(sub.URLs), emptyIfNil(sub.Codes), metaJSON, string(sub.Status), sub.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert submission")
	}
	return sub, nil
}

const pgSubmissionCols = `id, origin, submitter_id, text, urls, codes, metadata, status, created_at, processed_at`

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*model.RawSubmission, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgSubmissionCols+` FROM submissions WHERE id = $1`, id)
	return scanPgSubmission(row)
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.RawSubmission, error) {
	query := `SELECT ` + pgSubmissionCols + ` FROM submissions WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list submissions")
	}
	defer rows.Close()

	var subs []model.RawSubmission
	for rows.Next() {
		sub, err := scanPgSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: list submissions iterate")
}

func (s *PostgresStore) ListPendingSubmissions(ctx context.Context, limit int) ([]model.RawSubmission, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgSubmissionCols+` FROM submissions WHERE status = $1 ORDER BY created_at ASC LIMIT $2`,
		string(model.SubmissionPending), limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list pending")
	}
	defer rows.Close()

	var subs []model.RawSubmission
	for rows.Next() {
		sub, err := scanPgSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: list pending iterate")
}

func (s *PostgresStore) MarkSubmissionProcessing(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE submissions SET status = $1, processed_at = $2 WHERE id = $3 AND status = $4`,
		string(model.SubmissionProcessing), time.Now().UTC(), id, string(model.SubmissionPending),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark processing %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotPending
	}
	return nil
}

func (s *PostgresStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE submissions SET status = $1 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update submission status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

func (s *PostgresStore) ResetSubmission(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE submissions SET status = $1, processed_at = NULL WHERE id = $2 AND status = $3`,
		string(model.SubmissionPending), id, string(model.SubmissionError),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: reset submission %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "reset submission %s (must be in error status)", id)
	}
	return nil
}

// --- snapshots ---

func (s *PostgresStore) CreateSnapshot(ctx context.Context, snap *model.ClassificationSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	detailsJSON, err := json.Marshal(snap.Details)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal details")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (
			id, submission_id, is_promo, confidence, extracted_codes, extracted_urls,
			resolved_domains, guessed_casino, guessed_jurisdiction, headline, description,
			validity, is_spam, is_duplicate, duplicate_of, model_name, model_version,
			details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		snap.ID, snap.SubmissionID, snap.IsPromo, snap.Confidence,
		emptyIfNil(snap.ExtractedCodes), emptyIfNil(snap.ExtractedURLs), emptyIfNil(snap.ResolvedDomains),
		nullString(snap.GuessedCasino), nullString(snap.GuessedJurisdiction),
		snap.Headline, snap.Description, snap.Validity, snap.IsSpam, snap.IsDuplicate,
		nullString(snap.DuplicateOf), snap.ModelName, snap.ModelVersion,
		detailsJSON, snap.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert snapshot")
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.ClassificationSnapshot, error) {
	var snap model.ClassificationSnapshot
	var detailsJSON []byte
	var casino, jurisdiction, duplicateOf *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, submission_id, is_promo, confidence, extracted_codes, extracted_urls,
		        resolved_domains, guessed_casino, guessed_jurisdiction, headline, description,
		        validity, is_spam, is_duplicate, duplicate_of, model_name, model_version,
		        details, created_at
		 FROM snapshots WHERE id = $1`, id,
	).Scan(
		&snap.ID, &snap.SubmissionID, &snap.IsPromo, &snap.Confidence,
		&snap.ExtractedCodes, &snap.ExtractedURLs, &snap.ResolvedDomains,
		&casino, &jurisdiction, &snap.Headline, &snap.Description,
		&snap.Validity, &snap.IsSpam, &snap.IsDuplicate, &duplicateOf,
		&snap.ModelName, &snap.ModelVersion, &detailsJSON, &snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get snapshot %s", id)
	}

	if err := json.Unmarshal(detailsJSON, &snap.Details); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal details")
	}
	snap.GuessedCasino = derefString(casino)
	snap.GuessedJurisdiction = derefString(jurisdiction)
	snap.DuplicateOf = derefString(duplicateOf)
	return &snap, nil
}

// --- duplicate detection ---

func (s *PostgresStore) FindDuplicateByText(ctx context.Context, excludeID string, since, before time.Time, text, prefix string) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM submissions
		 WHERE id != $1 AND created_at > $2 AND created_at < $3
		   AND (text = $4 OR text LIKE '%' || $5 || '%')
		 ORDER BY created_at ASC LIMIT 1`,
		excludeID, since, before, text, prefix,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrap(err, "postgres: find duplicate by text")
	}
	return id, nil
}

func (s *PostgresStore) FindDuplicateByCodes(ctx context.Context, excludeID string, since, before time.Time, codes []string) (string, error) {
	if len(codes) == 0 {
		return "", nil
	}

	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT sub.id FROM submissions sub
		 JOIN snapshots snap ON snap.submission_id = sub.id
		 WHERE sub.id != $1 AND sub.created_at > $2 AND sub.created_at < $3
		   AND snap.extracted_codes && $4
		 ORDER BY sub.created_at ASC LIMIT 1`,
		excludeID, since, before, codes,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrap(err, "postgres: find duplicate by codes")
	}
	return id, nil
}

// --- candidates ---

func (s *PostgresStore) CreateCandidate(ctx context.Context, cand *model.PromoCandidate) error {
	if cand.ID == "" {
		cand.ID = uuid.New().String()
	}
	if cand.CreatedAt.IsZero() {
		cand.CreatedAt = time.Now().UTC()
	}
	if cand.ReviewStatus == "" {
		cand.ReviewStatus = model.ReviewPending
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO candidates (
			id, submission_id, snapshot_id, headline, description, promo_type,
			bonus_code, promo_url, resolved_domain, casino_id, jurisdiction_tags,
			validity, review_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		cand.ID, cand.SubmissionID, cand.SnapshotID, cand.Headline, cand.Description,
		string(cand.PromoType), nullString(cand.BonusCode), nullString(cand.PromoURL),
		nullString(cand.ResolvedDomain), nullString(cand.CasinoID), emptyIfNil(cand.JurisdictionTags),
		cand.Validity, string(cand.ReviewStatus), cand.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert candidate")
}

const pgCandidateCols = `id, submission_id, snapshot_id, headline, description, promo_type,
	bonus_code, promo_url, resolved_domain, casino_id, jurisdiction_tags, validity,
	review_status, created_at, reviewed_at`

func (s *PostgresStore) GetCandidate(ctx context.Context, id string) (*model.PromoCandidate, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgCandidateCols+` FROM candidates WHERE id = $1`, id)
	return scanPgCandidate(row)
}

func (s *PostgresStore) ListCandidates(ctx context.Context, filter CandidateFilter) ([]model.PromoCandidate, error) {
	query := `SELECT ` + pgCandidateCols + ` FROM candidates WHERE true`
	args := []any{}
	argIdx := 1

	if filter.ReviewStatus != "" {
		query += fmt.Sprintf(` AND review_status = $%d`, argIdx)
		args = append(args, string(filter.ReviewStatus))
		argIdx++
	}
	if filter.CasinoID != "" {
		query += fmt.Sprintf(` AND casino_id = $%d`, argIdx)
		args = append(args, filter.CasinoID)
		argIdx++
	}
	if filter.Jurisdiction != "" {
		query += fmt.Sprintf(` AND $%d = ANY(jurisdiction_tags)`, argIdx)
		args = append(args, filter.Jurisdiction)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list candidates")
	}
	defer rows.Close()

	var cands []model.PromoCandidate
	for rows.Next() {
		c, err := scanPgCandidate(rows)
		if err != nil {
			return nil, err
		}
		cands = append(cands, *c)
	}
	return cands, eris.Wrap(rows.Err(), "postgres: list candidates iterate")
}

func (s *PostgresStore) UpdateCandidateReview(ctx context.Context, id string, status model.ReviewStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE candidates SET review_status = $1, reviewed_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update candidate review %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

// --- casinos ---

func (s *PostgresStore) ListCasinos(ctx context.Context) ([]model.Casino, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, resolved_domain, supports_us_sweeps, supports_crypto FROM casinos ORDER BY name ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list casinos")
	}
	defer rows.Close()

	var casinos []model.Casino
	for rows.Next() {
		var c model.Casino
		var domain *string
		if err := rows.Scan(&c.ID, &c.Name, &domain, &c.SupportsSweeps, &c.SupportsCrypto); err != nil {
			return nil, eris.Wrap(err, "postgres: scan casino")
		}
		c.ResolvedDomain = derefString(domain)
		casinos = append(casinos, c)
	}
	return casinos, eris.Wrap(rows.Err(), "postgres: list casinos iterate")
}

func (s *PostgresStore) UpsertCasinos(ctx context.Context, casinos []model.Casino) (int, error) {
	if len(casinos) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(casinos))
	for _, c := range casinos {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		rows = append(rows, []any{c.ID, c.Name, nullString(c.ResolvedDomain), c.SupportsSweeps, c.SupportsCrypto})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "casinos",
		Columns:      []string{"id", "name", "resolved_domain", "supports_us_sweeps", "supports_crypto"},
		ConflictKeys: []string{"name"},
		UpdateCols:   []string{"resolved_domain", "supports_us_sweeps", "supports_crypto"},
	}, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: upsert casinos")
	}
	return int(n), nil
}

// --- helpers ---

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type pgScannable interface {
	Scan(dest ...any) error
}

func scanPgSubmission(row pgScannable) (*model.RawSubmission, error) {
	var sub model.RawSubmission
	var metaJSON []byte
	var processedAt *time.Time

	err := row.Scan(
		&sub.ID, &sub.Origin, &sub.SubmitterID, &sub.Text, &sub.URLs, &sub.Codes,
		&metaJSON, &sub.Status, &sub.CreatedAt, &processedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "postgres: scan submission")
	}

	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &sub.Metadata); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal metadata")
		}
	}
	sub.ProcessedAt = processedAt
	return &sub, nil
}

func scanPgCandidate(row pgScannable) (*model.PromoCandidate, error) {
	var c model.PromoCandidate
	var bonusCode, promoURL, domain, casinoID *string
	var reviewedAt *time.Time

	err := row.Scan(
		&c.ID, &c.SubmissionID, &c.SnapshotID, &c.Headline, &c.Description, &c.PromoType,
		&bonusCode, &promoURL, &domain, &casinoID, &c.JurisdictionTags, &c.Validity,
		&c.ReviewStatus, &c.CreatedAt, &reviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "postgres: scan candidate")
	}

	c.BonusCode = derefString(bonusCode)
	c.PromoURL = derefString(promoURL)
	c.ResolvedDomain = derefString(domain)
	c.CasinoID = derefString(casinoID)
	c.ReviewedAt = reviewedAt
	return &c, nil
}
