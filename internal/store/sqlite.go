package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY,
	origin       TEXT NOT NULL,
	submitter_id TEXT NOT NULL,
	text         TEXT NOT NULL,
	urls         TEXT NOT NULL DEFAULT '[]',
	codes        TEXT NOT NULL DEFAULT '[]',
	metadata     TEXT,
	status       TEXT NOT NULL DEFAULT 'pending',
	created_at   DATETIME NOT NULL,
	processed_at DATETIME
);

CREATE TABLE IF NOT EXISTS snapshots (
	id                   TEXT PRIMARY KEY,
	submission_id        TEXT NOT NULL REFERENCES submissions(id),
	is_promo             INTEGER NOT NULL,
	confidence           REAL NOT NULL,
	extracted_codes      TEXT NOT NULL DEFAULT '[]',
	extracted_urls       TEXT NOT NULL DEFAULT '[]',
	resolved_domains     TEXT NOT NULL DEFAULT '[]',
	guessed_casino       TEXT,
	guessed_jurisdiction TEXT,
	headline             TEXT NOT NULL,
	description          TEXT NOT NULL,
	validity             REAL NOT NULL,
	is_spam              INTEGER NOT NULL,
	is_duplicate         INTEGER NOT NULL,
	duplicate_of         TEXT,
	model_name           TEXT NOT NULL,
	model_version        TEXT NOT NULL,
	details              TEXT NOT NULL DEFAULT '{}',
	created_at           DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
	id                TEXT PRIMARY KEY,
	submission_id     TEXT NOT NULL REFERENCES submissions(id),
	snapshot_id       TEXT NOT NULL REFERENCES snapshots(id),
	headline          TEXT NOT NULL,
	description       TEXT NOT NULL,
	promo_type        TEXT NOT NULL,
	bonus_code        TEXT,
	promo_url         TEXT,
	resolved_domain   TEXT,
	casino_id         TEXT,
	jurisdiction_tags TEXT NOT NULL DEFAULT '[]',
	validity          REAL NOT NULL,
	review_status     TEXT NOT NULL DEFAULT 'pending',
	created_at        DATETIME NOT NULL,
	reviewed_at       DATETIME
);

CREATE TABLE IF NOT EXISTS casinos (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL UNIQUE,
	resolved_domain    TEXT,
	supports_us_sweeps INTEGER NOT NULL DEFAULT 0,
	supports_crypto    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_submission ON snapshots(submission_id);
CREATE INDEX IF NOT EXISTS idx_candidates_review ON candidates(review_status, created_at);
CREATE INDEX IF NOT EXISTS idx_candidates_casino ON candidates(casino_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- submissions ---

func (s *SQLiteStore) CreateSubmission(ctx context.Context, in SubmissionInput) (*model.RawSubmission, error) {
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

	urlsJSON, err := marshalStrings(sub.URLs)
	if err != nil {
		return nil, err
	}
	codesJSON, err := marshalStrings(sub.Codes)
	if err != nil {
		return nil, err
	}
	metaJSON, err := marshalNullable(sub.Metadata)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, origin, submitter_id, text, urls, codes, metadata, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, string(sub.Origin), sub.SubmitterID, sub.Text, urlsJSON, codesJSON, metaJSON, string(sub.Status), sub.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert submission")
	}
	return sub, nil
}

const sqliteSubmissionCols = `id, origin, submitter_id, text, urls, codes, metadata, status, created_at, processed_at`

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.RawSubmission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteSubmissionCols+` FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.RawSubmission, error) {
	query := `SELECT ` + sqliteSubmissionCols + ` FROM submissions WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list submissions")
	}
	defer rows.Close()

	var subs []model.RawSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: list submissions iterate")
}

func (s *SQLiteStore) ListPendingSubmissions(ctx context.Context, limit int) ([]model.RawSubmission, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteSubmissionCols+` FROM submissions WHERE status = ? ORDER BY created_at ASC LIMIT ?`,
		string(model.SubmissionPending), limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list pending")
	}
	defer rows.Close()

	var subs []model.RawSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: list pending iterate")
}

func (s *SQLiteStore) MarkSubmissionProcessing(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ?, processed_at = ? WHERE id = ? AND status = ?`,
		string(model.SubmissionProcessing), time.Now().UTC(), id, string(model.SubmissionPending),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark processing %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotPending
	}
	return nil
}

func (s *SQLiteStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ? WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update submission status %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) ResetSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ?, processed_at = NULL WHERE id = ? AND status = ?`,
		string(model.SubmissionPending), id, string(model.SubmissionError),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: reset submission %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "reset submission %s (must be in error status)", id)
	}
	return nil
}

// --- snapshots ---

func (s *SQLiteStore) CreateSnapshot(ctx context.Context, snap *model.ClassificationSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	codesJSON, err := marshalStrings(snap.ExtractedCodes)
	if err != nil {
		return err
	}
	urlsJSON, err := marshalStrings(snap.ExtractedURLs)
	if err != nil {
		return err
	}
	domainsJSON, err := marshalStrings(snap.ResolvedDomains)
	if err != nil {
		return err
	}
	detailsJSON, err := json.Marshal(snap.Details)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal details")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (
			id, submission_id, is_promo, confidence, extracted_codes, extracted_urls,
			resolved_domains, guessed_casino, guessed_jurisdiction, headline, description,
			validity, is_spam, is_duplicate, duplicate_of, model_name, model_version,
			details, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.SubmissionID, snap.IsPromo, snap.Confidence, codesJSON, urlsJSON,
		domainsJSON, nullString(snap.GuessedCasino), nullString(snap.GuessedJurisdiction),
		snap.Headline, snap.Description, snap.Validity, snap.IsSpam, snap.IsDuplicate,
		nullString(snap.DuplicateOf), snap.ModelName, snap.ModelVersion,
		string(detailsJSON), snap.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert snapshot")
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*model.ClassificationSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, submission_id, is_promo, confidence, extracted_codes, extracted_urls,
		        resolved_domains, guessed_casino, guessed_jurisdiction, headline, description,
		        validity, is_spam, is_duplicate, duplicate_of, model_name, model_version,
		        details, created_at
		 FROM snapshots WHERE id = ?`, id)

	var snap model.ClassificationSnapshot
	var codesJSON, urlsJSON, domainsJSON, detailsJSON string
	var casino, jurisdiction, duplicateOf sql.NullString

	err := row.Scan(
		&snap.ID, &snap.SubmissionID, &snap.IsPromo, &snap.Confidence, &codesJSON, &urlsJSON,
		&domainsJSON, &casino, &jurisdiction, &snap.Headline, &snap.Description,
		&snap.Validity, &snap.IsSpam, &snap.IsDuplicate, &duplicateOf,
		&snap.ModelName, &snap.ModelVersion, &detailsJSON, &snap.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan snapshot")
	}

	if err := unmarshalStrings(codesJSON, &snap.ExtractedCodes); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(urlsJSON, &snap.ExtractedURLs); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(domainsJSON, &snap.ResolvedDomains); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(detailsJSON), &snap.Details); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal details")
	}
	snap.GuessedCasino = casino.String
	snap.GuessedJurisdiction = jurisdiction.String
	snap.DuplicateOf = duplicateOf.String
	return &snap, nil
}

// --- duplicate detection ---

func (s *SQLiteStore) FindDuplicateByText(ctx context.Context, excludeID string, since, before time.Time, text, prefix string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM submissions
		 WHERE id != ? AND created_at > ? AND created_at < ?
		   AND (text = ? OR text LIKE ?)
		 ORDER BY created_at ASC LIMIT 1`,
		excludeID, since, before, text, "%"+prefix+"%",
	)

	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "sqlite: find duplicate by text")
	}
	return id, nil
}

func (s *SQLiteStore) FindDuplicateByCodes(ctx context.Context, excludeID string, since, before time.Time, codes []string) (string, error) {
	if len(codes) == 0 {
		return "", nil
	}

	placeholders := strings.Repeat("?,", len(codes))
	placeholders = placeholders[:len(placeholders)-1]

	args := []any{excludeID, since, before}
	for _, c := range codes {
		args = append(args, c)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT sub.id FROM submissions sub
		 JOIN snapshots snap ON snap.submission_id = sub.id
		 WHERE sub.id != ? AND sub.created_at > ? AND sub.created_at < ?
		   AND EXISTS (
		     SELECT 1 FROM json_each(snap.extracted_codes)
		     WHERE json_each.value IN (`+placeholders+`)
		   )
		 ORDER BY sub.created_at ASC LIMIT 1`,
		args...,
	)

	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "sqlite: find duplicate by codes")
	}
	return id, nil
}

// --- candidates ---

func (s *SQLiteStore) CreateCandidate(ctx context.Context, cand *model.PromoCandidate) error {
	if cand.ID == "" {
		cand.ID = uuid.New().String()
	}
	if cand.CreatedAt.IsZero() {
		cand.CreatedAt = time.Now().UTC()
	}
	if cand.ReviewStatus == "" {
		cand.ReviewStatus = model.ReviewPending
	}

	tagsJSON, err := marshalStrings(cand.JurisdictionTags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO candidates (
			id, submission_id, snapshot_id, headline, description, promo_type,
			bonus_code, promo_url, resolved_domain, casino_id, jurisdiction_tags,
			validity, review_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cand.ID, cand.SubmissionID, cand.SnapshotID, cand.Headline, cand.Description,
		string(cand.PromoType), nullString(cand.BonusCode), nullString(cand.PromoURL),
		nullString(cand.ResolvedDomain), nullString(cand.CasinoID), tagsJSON,
		cand.Validity, string(cand.ReviewStatus), cand.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert candidate")
}

const sqliteCandidateCols = `id, submission_id, snapshot_id, headline, description, promo_type,
	bonus_code, promo_url, resolved_domain, casino_id, jurisdiction_tags, validity,
	review_status, created_at, reviewed_at`

func (s *SQLiteStore) GetCandidate(ctx context.Context, id string) (*model.PromoCandidate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteCandidateCols+` FROM candidates WHERE id = ?`, id)
	return scanCandidate(row)
}

func (s *SQLiteStore) ListCandidates(ctx context.Context, filter CandidateFilter) ([]model.PromoCandidate, error) {
	query := `SELECT ` + sqliteCandidateCols + ` FROM candidates WHERE 1=1`
	var args []any

	if filter.ReviewStatus != "" {
		query += ` AND review_status = ?`
		args = append(args, string(filter.ReviewStatus))
	}
	if filter.CasinoID != "" {
		query += ` AND casino_id = ?`
		args = append(args, filter.CasinoID)
	}
	if filter.Jurisdiction != "" {
		query += ` AND EXISTS (SELECT 1 FROM json_each(jurisdiction_tags) WHERE json_each.value = ?)`
		args = append(args, filter.Jurisdiction)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list candidates")
	}
	defer rows.Close()

	var cands []model.PromoCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		cands = append(cands, *c)
	}
	return cands, eris.Wrap(rows.Err(), "sqlite: list candidates iterate")
}

func (s *SQLiteStore) UpdateCandidateReview(ctx context.Context, id string, status model.ReviewStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE candidates SET review_status = ?, reviewed_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update candidate review %s", id)
	}
	return checkRowsAffected(res, id)
}

// --- casinos ---

func (s *SQLiteStore) ListCasinos(ctx context.Context) ([]model.Casino, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, resolved_domain, supports_us_sweeps, supports_crypto FROM casinos ORDER BY name ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list casinos")
	}
	defer rows.Close()

	var casinos []model.Casino
	for rows.Next() {
		var c model.Casino
		var domain sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &domain, &c.SupportsSweeps, &c.SupportsCrypto); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan casino")
		}
		c.ResolvedDomain = domain.String
		casinos = append(casinos, c)
	}
	return casinos, eris.Wrap(rows.Err(), "sqlite: list casinos iterate")
}

func (s *SQLiteStore) UpsertCasinos(ctx context.Context, casinos []model.Casino) (int, error) {
	if len(casinos) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	count := 0
	for _, c := range casinos {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO casinos (id, name, resolved_domain, supports_us_sweeps, supports_crypto)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET
			   resolved_domain = excluded.resolved_domain,
			   supports_us_sweeps = excluded.supports_us_sweeps,
			   supports_crypto = excluded.supports_crypto`,
			c.ID, c.Name, nullString(c.ResolvedDomain), c.SupportsSweeps, c.SupportsCrypto,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert casino %s", c.Name)
		}
		count++
	}
	return count, eris.Wrap(tx.Commit(), "sqlite: commit upsert")
}

// --- helpers ---

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

func marshalStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "", eris.Wrap(err, "marshal string slice")
	}
	return string(b), nil
}

func unmarshalStrings(data string, out *[]string) error {
	if data == "" {
		return nil
	}
	var ss []string
	if err := json.Unmarshal([]byte(data), &ss); err != nil {
		return eris.Wrap(err, "unmarshal string slice")
	}
	if len(ss) > 0 {
		*out = ss
	}
	return nil
}

func marshalNullable(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, eris.Wrap(err, "marshal metadata")
	}
	return string(b), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSubmission(row scannable) (*model.RawSubmission, error) {
	var sub model.RawSubmission
	var urlsJSON, codesJSON string
	var metaJSON sql.NullString
	var processedAt sql.NullTime

	err := row.Scan(
		&sub.ID, &sub.Origin, &sub.SubmitterID, &sub.Text, &urlsJSON, &codesJSON,
		&metaJSON, &sub.Status, &sub.CreatedAt, &processedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan submission")
	}

	if err := unmarshalStrings(urlsJSON, &sub.URLs); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(codesJSON, &sub.Codes); err != nil {
		return nil, err
	}
	if metaJSON.Valid && metaJSON.String != "" {
		if err := json.Unmarshal([]byte(metaJSON.String), &sub.Metadata); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal metadata")
		}
	}
	if processedAt.Valid {
		t := processedAt.Time
		sub.ProcessedAt = &t
	}
	return &sub, nil
}

func scanCandidate(row scannable) (*model.PromoCandidate, error) {
	var c model.PromoCandidate
	var bonusCode, promoURL, domain, casinoID sql.NullString
	var tagsJSON string
	var reviewedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.SubmissionID, &c.SnapshotID, &c.Headline, &c.Description, &c.PromoType,
		&bonusCode, &promoURL, &domain, &casinoID, &tagsJSON, &c.Validity,
		&c.ReviewStatus, &c.CreatedAt, &reviewedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan candidate")
	}

	if err := unmarshalStrings(tagsJSON, &c.JurisdictionTags); err != nil {
		return nil, err
	}
	c.BonusCode = bonusCode.String
	c.PromoURL = promoURL.String
	c.ResolvedDomain = domain.String
	c.CasinoID = casinoID.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		c.ReviewedAt = &t
	}
	return &c, nil
}
