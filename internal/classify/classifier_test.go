package classify

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamblecodez/drops-cli/internal/dedup"
	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/store"
)

// stubResolver maps URLs to domains without network access.
type stubResolver struct {
	domains map[string]string
}

func (r *stubResolver) ResolveAll(_ context.Context, urls []string) []string {
	var out []string
	for _, u := range urls {
		if d, ok := r.domains[u]; ok && d != "" {
			out = append(out, d)
		}
	}
	return out
}

// staticSource serves a fixed casino registry.
type staticSource struct {
	casinos []model.Casino
	err     error
}

func (s *staticSource) Casinos(context.Context) ([]model.Casino, error) {
	return s.casinos, s.err
}

func testRegistry() []model.Casino {
	return []model.Casino{
		{ID: "casino-stake", Name: "Stake", ResolvedDomain: "stake.us", SupportsSweeps: true, SupportsCrypto: true},
		{ID: "casino-roobet", Name: "Roobet", ResolvedDomain: "roobet.com", SupportsCrypto: true},
	}
}

func newTestClassifier(t *testing.T, source *staticSource, resolver *stubResolver) (*Classifier, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "classify.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })

	detector := dedup.New(st, 0)
	c := New(st, resolver, source, detector, Options{Concurrency: 2})
	return c, st
}

func submit(t *testing.T, st store.Store, text string) *model.RawSubmission {
	t.Helper()
	sub, err := st.CreateSubmission(context.Background(), store.SubmissionInput{
		Origin:      model.OriginGroupChat,
		SubmitterID: "user-1",
		Text:        text,
	})
	require.NoError(t, err)
	return sub
}

func TestClassifyHybridPromo(t *testing.T) {
	resolver := &stubResolver{domains: map[string]string{"https://stake.us/promo": "stake.us"}}
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, resolver)
	ctx := context.Background()

	sub := submit(t, st, "Use code SPINS100 at https://stake.us/promo for a deposit bonus")

	res, err := c.Classify(ctx, sub.ID)
	require.NoError(t, err)

	snap := res.Snapshot
	assert.True(t, snap.IsPromo)
	assert.False(t, snap.IsSpam)
	assert.False(t, snap.IsDuplicate)
	assert.Equal(t, []string{"SPINS100"}, snap.ExtractedCodes)
	assert.Equal(t, []string{"https://stake.us/promo"}, snap.ExtractedURLs)
	assert.Equal(t, []string{"stake.us"}, snap.ResolvedDomains)
	assert.Equal(t, "Stake", snap.GuessedCasino)
	assert.Equal(t, model.JurisdictionUSA, snap.GuessedJurisdiction)
	assert.InDelta(t, 1.0, snap.Confidence, 1e-9)
	assert.Equal(t, "rule-based-v1", snap.ModelName)
	assert.Equal(t, "1.0.0", snap.ModelVersion)
	assert.True(t, snap.Details.HasCasinoMatch)

	cand := res.Candidate
	require.NotNil(t, cand)
	assert.Equal(t, model.PromoTypeHybrid, cand.PromoType)
	assert.Equal(t, "SPINS100", cand.BonusCode)
	assert.Equal(t, "https://stake.us/promo", cand.PromoURL)
	assert.Equal(t, "stake.us", cand.ResolvedDomain)
	assert.Equal(t, "casino-stake", cand.CasinoID)
	assert.Equal(t, []string{model.JurisdictionUSA, model.JurisdictionCrypto}, cand.JurisdictionTags)
	assert.Equal(t, "Stake Bonus Code: SPINS100", cand.Headline)
	assert.Equal(t, model.ReviewPending, cand.ReviewStatus)

	got, err := st.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionClassified, got.Status)
}

func TestClassifySpamGetsSnapshotButNoCandidate(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	ctx := context.Background()

	sub := submit(t, st, "Use code SPINS100 now"+strings.Repeat("!", 12))

	res, err := c.Classify(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, res.Snapshot.IsPromo)
	assert.True(t, res.Snapshot.IsSpam)
	assert.Nil(t, res.Candidate)

	cands, err := st.ListCandidates(ctx, store.CandidateFilter{})
	require.NoError(t, err)
	assert.Empty(t, cands)

	got, err := st.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionClassified, got.Status)
}

func TestClassifyDuplicateFlagsLaterSubmissionOnly(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	ctx := context.Background()

	text := "Use code LUCKY777 for a reload bonus this weekend only"
	first := submit(t, st, text)
	time.Sleep(10 * time.Millisecond)
	second := submit(t, st, text)

	firstRes, err := c.Classify(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, firstRes.Snapshot.IsDuplicate)
	require.NotNil(t, firstRes.Candidate)

	secondRes, err := c.Classify(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, secondRes.Snapshot.IsDuplicate)
	assert.Equal(t, first.ID, secondRes.Snapshot.DuplicateOf)
	assert.Nil(t, secondRes.Candidate)

	// earlier snapshot is untouched
	got, err := st.GetSnapshot(ctx, firstRes.Snapshot.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDuplicate)
}

func TestClassifyInfoOnlyPromo(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	ctx := context.Background()

	sub := submit(t, st, "Heard there is a new bonus happening at some casino this weekend")

	res, err := c.Classify(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, res.Snapshot.IsPromo)
	assert.Empty(t, res.Snapshot.ExtractedCodes)
	assert.Empty(t, res.Snapshot.ExtractedURLs)

	require.NotNil(t, res.Candidate)
	assert.Equal(t, model.PromoTypeInfoOnly, res.Candidate.PromoType)
	assert.Empty(t, res.Candidate.BonusCode)
	assert.Empty(t, res.Candidate.PromoURL)
	assert.Equal(t, []string{model.JurisdictionEverywhere}, res.Candidate.JurisdictionTags)
}

func TestClassifyAlreadyClaimed(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	ctx := context.Background()

	sub := submit(t, st, "Use code SPINS100 for a bonus")
	_, err := c.Classify(ctx, sub.ID)
	require.NoError(t, err)

	_, err = c.Classify(ctx, sub.ID)
	assert.ErrorIs(t, err, store.ErrNotPending)
}

func TestClassifyErrorMarksSubmissionAndResetRetries(t *testing.T) {
	broken := &staticSource{err: eris.New("registry unavailable")}
	c, st := newTestClassifier(t, broken, &stubResolver{})
	ctx := context.Background()

	sub := submit(t, st, "Use code SPINS100 for a bonus")

	_, err := c.Classify(ctx, sub.ID)
	require.Error(t, err)

	got, err := st.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionError, got.Status)

	// operator reset re-enqueues and the registry has recovered
	require.NoError(t, st.ResetSubmission(ctx, sub.ID))
	broken.err = nil
	broken.casinos = testRegistry()

	res, err := c.Classify(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, res.Snapshot.IsPromo)
}

// panicResolver panics on marked URLs, resolving everything else to
// nothing.
type panicResolver struct{}

func (panicResolver) ResolveAll(_ context.Context, urls []string) []string {
	for _, u := range urls {
		if strings.Contains(u, "boom") {
			panic("resolver blew up")
		}
	}
	return nil
}

func TestClassifyRecoversFromPanic(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	c.resolver = panicResolver{}
	ctx := context.Background()

	sub := submit(t, st, "Use code SPINS100 at https://boom.example/promo")

	_, err := c.Classify(ctx, sub.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")

	got, err := st.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionError, got.Status)
}

func TestProcessPendingSurvivesPanic(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	c.resolver = panicResolver{}
	ctx := context.Background()

	bad := submit(t, st, "Use code SPINS100 at https://boom.example/promo")
	time.Sleep(5 * time.Millisecond)
	good := submit(t, st, "Roobet is running a crypto promo right now, check it out")

	results, err := c.ProcessPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, good.ID, results[0].Submission.ID)

	got, err := st.GetSubmission(ctx, bad.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionError, got.Status)
}

func TestProcessPendingIsolatesFailures(t *testing.T) {
	c, st := newTestClassifier(t, &staticSource{casinos: testRegistry()}, &stubResolver{})
	ctx := context.Background()

	a := submit(t, st, "Use code SPINS100 for a bonus")
	time.Sleep(5 * time.Millisecond)
	b := submit(t, st, "Roobet is running a crypto promo right now, check it out")

	results, err := c.ProcessPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	for _, id := range []string{a.ID, b.ID} {
		got, err := st.GetSubmission(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.SubmissionClassified, got.Status)
	}

	// nothing left to process
	results, err = c.ProcessPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
