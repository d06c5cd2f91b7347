// Package resolve determines the effective hostname behind a submitted
// URL. Known link shorteners are followed with a bounded HEAD request;
// everything else, and every failure, degrades to parsing the hostname
// straight out of the URL string. This is the only component in the
// pipeline that performs outbound network I/O, and none of its failures
// are fatal to a classification run.
package resolve

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gamblecodez/drops-cli/internal/config"
	"github.com/gamblecodez/drops-cli/internal/resilience"
)

// redirectorHosts is the closed list of link-shortener/redirector
// domains whose real destination is only knowable by following them.
var redirectorHosts = []string{
	"d10k.io",
	"bit.ly",
	"tinyurl.com",
	"t.co",
	"short.link",
	"goo.gl",
}

// Resolver resolves URLs to their effective hostnames.
type Resolver struct {
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *resilience.Breaker
	retry     resilience.RetryConfig
	timeout   time.Duration
	userAgent string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.client = hc
	}
}

// WithBreaker sets a custom circuit breaker.
func WithBreaker(b *resilience.Breaker) Option {
	return func(r *Resolver) {
		r.breaker = b
	}
}

// New creates a Resolver from config.
func New(cfg config.ResolverConfig, opts ...Option) *Resolver {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 4
	}
	retryCfg := resilience.DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retryCfg.MaxAttempts = cfg.MaxAttempts
	}

	r := &Resolver{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perSec), 1),
		breaker:   resilience.NewBreaker(5, 30*time.Second),
		retry:     retryCfg,
		timeout:   timeout,
		userAgent: cfg.UserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the effective hostname for rawURL, or "" when the URL
// cannot be parsed at all. Redirectors are followed best-effort; any
// timeout, network error, or non-2xx response falls back to the naive
// hostname parse.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	if isRedirector(rawURL) {
		if host, err := r.follow(ctx, rawURL); err == nil {
			return host
		} else if !errors.Is(err, resilience.ErrBreakerOpen) {
			zap.L().Debug("resolve: redirector follow failed",
				zap.String("url", rawURL),
				zap.Error(err),
			)
		}
	}

	return naiveHost(rawURL)
}

// ResolveAll resolves every URL concurrently, preserving input order and
// dropping entries that could not be parsed.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	resolved := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			resolved[i] = r.Resolve(gctx, u)
			return nil
		})
	}
	_ = g.Wait()

	var out []string
	for _, host := range resolved {
		if host != "" {
			out = append(out, host)
		}
	}
	return out
}

// follow issues a HEAD request through the rate limiter, retry, and
// breaker, and returns the hostname of the final effective URL.
func (r *Resolver) follow(ctx context.Context, rawURL string) (string, error) {
	if !r.breaker.Allow() {
		return "", resilience.ErrBreakerOpen
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "resolve: rate limit wait")
	}

	host, err := resilience.Retry(ctx, r.retry, func(ctx context.Context) (string, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
		if reqErr != nil {
			return "", eris.Wrap(reqErr, "resolve: build request")
		}
		if r.userAgent != "" {
			req.Header.Set("User-Agent", r.userAgent)
		}

		resp, doErr := r.client.Do(req)
		if doErr != nil {
			return "", eris.Wrap(doErr, "resolve: head request")
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", eris.Errorf("resolve: redirector returned status %d", resp.StatusCode)
		}

		final := resp.Request.URL.Hostname()
		if final == "" {
			return "", eris.New("resolve: empty final hostname")
		}
		return strings.TrimPrefix(final, "www."), nil
	})
	r.breaker.Record(err)
	return host, err
}

// isRedirector reports whether rawURL's host is on the closed
// redirector list.
func isRedirector(rawURL string) bool {
	host := naiveHost(rawURL)
	for _, rd := range redirectorHosts {
		if host == rd || strings.HasSuffix(host, "."+rd) {
			return true
		}
	}
	return false
}

// naiveHost parses the hostname straight from the URL string, stripping
// a leading www. Returns "" if the URL cannot be parsed.
func naiveHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		u, err = url.Parse("https://" + rawURL)
		if err != nil {
			return ""
		}
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
