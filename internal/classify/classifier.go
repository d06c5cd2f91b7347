// Package classify orchestrates the rule-based promo classification
// pipeline: extraction, domain resolution, casino matching, scoring,
// spam and duplicate detection, and persistence of the results.
package classify

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gamblecodez/drops-cli/internal/dedup"
	"github.com/gamblecodez/drops-cli/internal/extract"
	"github.com/gamblecodez/drops-cli/internal/jurisdiction"
	"github.com/gamblecodez/drops-cli/internal/match"
	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/registry"
	"github.com/gamblecodez/drops-cli/internal/score"
	"github.com/gamblecodez/drops-cli/internal/store"
)

// DomainResolver resolves promo URLs to their landing domains.
type DomainResolver interface {
	ResolveAll(ctx context.Context, urls []string) []string
}

// Classifier runs the classification pipeline against the store.
type Classifier struct {
	store        store.Store
	resolver     DomainResolver
	source       registry.Source
	dedup        *dedup.Detector
	modelName    string
	modelVersion string
	concurrency  int
}

// Options tunes the classifier.
type Options struct {
	ModelName    string
	ModelVersion string
	Concurrency  int
}

// New creates a Classifier.
func New(st store.Store, resolver DomainResolver, source registry.Source, detector *dedup.Detector, opts Options) *Classifier {
	if opts.ModelName == "" {
		opts.ModelName = "rule-based-v1"
	}
	if opts.ModelVersion == "" {
		opts.ModelVersion = "1.0.0"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Classifier{
		store:        st,
		resolver:     resolver,
		source:       source,
		dedup:        detector,
		modelName:    opts.ModelName,
		modelVersion: opts.ModelVersion,
		concurrency:  opts.Concurrency,
	}
}

// Classify runs the full pipeline for one submission. A snapshot is
// written even when the submission is rejected as spam, duplicate, or
// non-promo; a promo candidate is created only when all three gates
// pass. On pipeline failure the submission is marked errored and the
// error returned.
func (c *Classifier) Classify(ctx context.Context, id string) (*model.ClassifyResult, error) {
	sub, err := c.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: get submission %s", id)
	}

	if err := c.store.MarkSubmissionProcessing(ctx, id); err != nil {
		return nil, eris.Wrapf(err, "classify: claim submission %s", id)
	}

	result, err := c.run(ctx, sub)
	if err != nil {
		if stErr := c.store.UpdateSubmissionStatus(ctx, id, model.SubmissionError); stErr != nil {
			zap.L().Error("failed to mark submission errored",
				zap.String("submission_id", id), zap.Error(stErr))
		}
		return nil, eris.Wrapf(err, "classify: submission %s", id)
	}

	if err := c.store.UpdateSubmissionStatus(ctx, id, model.SubmissionClassified); err != nil {
		return nil, eris.Wrapf(err, "classify: finalize submission %s", id)
	}
	sub.Status = model.SubmissionClassified
	return result, nil
}

// run executes the pipeline stages. A panic in any stage is recovered
// and surfaced as an error so Classify can mark the submission errored
// and batch runs keep their per-item isolation.
func (c *Classifier) run(ctx context.Context, sub *model.RawSubmission) (result *model.ClassifyResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline panic",
				zap.String("submission_id", sub.ID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			result = nil
			err = eris.Errorf("pipeline panic: %v", r)
		}
	}()

	urls := extract.URLs(sub.Text)
	codes := extract.BonusCodeCandidates(sub.Text)
	domains := c.resolver.ResolveAll(ctx, urls)

	casinos, err := c.source.Casinos(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "load casino registry")
	}

	firstDomain := ""
	if len(domains) > 0 {
		firstDomain = domains[0]
	}
	casino := match.Casino(firstDomain, sub.Text, casinos)

	tags := jurisdiction.Infer(casino, sub.Text)
	guessedJurisdiction := jurisdiction.First(tags)

	in := score.Inputs{
		Text:    sub.Text,
		Codes:   codes,
		URLs:    urls,
		Domains: domains,
		Casino:  casino,
	}
	isPromo := score.IsPromo(in)
	confidence := score.Confidence(in)
	validity := score.Validity(in)

	casinoName := ""
	casinoID := ""
	if casino != nil {
		casinoName = casino.Name
		casinoID = casino.ID
	}
	firstCode := ""
	if len(codes) > 0 {
		firstCode = codes[0]
	}
	headline := extract.Headline(sub.Text, casinoName, firstCode)
	description := extract.Description(sub.Text, headline)

	isSpam := extract.IsSpam(sub.Text)

	duplicateOf, err := c.dedup.Check(ctx, sub, codes)
	if err != nil {
		return nil, eris.Wrap(err, "duplicate check")
	}

	snap := &model.ClassificationSnapshot{
		SubmissionID:        sub.ID,
		IsPromo:             isPromo,
		Confidence:          confidence,
		ExtractedCodes:      codes,
		ExtractedURLs:       urls,
		ResolvedDomains:     domains,
		GuessedCasino:       casinoName,
		GuessedJurisdiction: guessedJurisdiction,
		Headline:            headline,
		Description:         description,
		Validity:            validity,
		IsSpam:              isSpam,
		IsDuplicate:         duplicateOf != "",
		DuplicateOf:         duplicateOf,
		ModelName:           c.modelName,
		ModelVersion:        c.modelVersion,
		Details:             score.NewBreakdown(in, guessedJurisdiction),
	}
	if err := c.store.CreateSnapshot(ctx, snap); err != nil {
		return nil, eris.Wrap(err, "persist snapshot")
	}

	result = &model.ClassifyResult{Submission: sub, Snapshot: snap}

	if isPromo && !isSpam && duplicateOf == "" {
		firstURL := ""
		if len(urls) > 0 {
			firstURL = urls[0]
		}
		cand := &model.PromoCandidate{
			SubmissionID:     sub.ID,
			SnapshotID:       snap.ID,
			Headline:         headline,
			Description:      description,
			PromoType:        extract.PromoType(codes, urls),
			BonusCode:        firstCode,
			PromoURL:         firstURL,
			ResolvedDomain:   firstDomain,
			CasinoID:         casinoID,
			JurisdictionTags: tags,
			Validity:         validity,
		}
		if err := c.store.CreateCandidate(ctx, cand); err != nil {
			return nil, eris.Wrap(err, "persist candidate")
		}
		result.Candidate = cand
	}

	zap.L().Info("classified submission",
		zap.String("submission_id", sub.ID),
		zap.Bool("is_promo", isPromo),
		zap.Bool("is_spam", isSpam),
		zap.Bool("is_duplicate", duplicateOf != ""),
		zap.Float64("confidence", confidence),
		zap.String("casino", casinoName),
	)
	return result, nil
}

// ProcessPending classifies up to limit pending submissions, oldest
// first. Failures are isolated per submission: one bad drop never
// blocks the rest of the batch.
func (c *Classifier) ProcessPending(ctx context.Context, limit int) ([]*model.ClassifyResult, error) {
	pending, err := c.store.ListPendingSubmissions(ctx, limit)
	if err != nil {
		return nil, eris.Wrap(err, "classify: list pending")
	}

	var (
		mu      sync.Mutex
		results []*model.ClassifyResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, sub := range pending {
		g.Go(func() error {
			res, err := c.Classify(gctx, sub.ID)
			if err != nil {
				zap.L().Error("failed to classify submission",
					zap.String("submission_id", sub.ID), zap.Error(err))
				return nil
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, eris.Wrap(err, "classify: batch")
	}
	return results, nil
}
