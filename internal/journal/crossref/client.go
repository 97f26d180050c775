package crossref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"journal-service/internal/journal/metrics"
	"journal-service/pkg/platform/circuit"
	dErrors "journal-service/pkg/domain-errors"
	"journal-service/pkg/platform/sentinel"
)

const (
	// BaseURL is the public Crossref REST API.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout bounds a single work request.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is requests per second; the polite pool allows more
	// but a single service instance does not need it.
	DefaultRateLimit = 10.0

	// DefaultCacheTTL is how long fetched work documents are reused.
	DefaultCacheTTL = 24 * time.Hour

	maxBodyBytes = 4 << 20
	userAgent    = "journal-service/1.0"
)

// ErrDocumentTooLarge is returned when a work document exceeds the read limit.
var ErrDocumentTooLarge = errors.New("crossref document exceeds size limit")

// Cache stores raw work documents keyed by normalized DOI. Get returns
// sentinel.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, doi string) ([]byte, error)
	Set(ctx context.Context, doi string, document []byte, ttl time.Duration) error
}

// Client is a rate-limited HTTP client for Crossref work metadata.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	cache      Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	breaker    *circuit.Breaker
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithMailto identifies the caller so requests are routed to Crossref's
// polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithRateLimit sets the maximum requests per second. Non-positive values
// disable limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithCache enables document caching.
func WithCache(cache Cache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithBreaker fails fetches fast with sentinel.ErrUnavailable while
// Crossref keeps failing.
func WithBreaker(b *circuit.Breaker) ClientOption {
	return func(c *Client) {
		c.breaker = b
	}
}

// NewClient creates a Crossref client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    BaseURL,
		cacheTTL:   DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeDOI strips resolver prefixes and lowercases a DOI. DOIs are
// case-insensitive, so the normalized form is used as the cache key.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(lower, prefix) {
			lower = lower[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(lower)
}

// FetchWork returns the raw Crossref work document for doi.
//
// Errors: CodeValidation for an empty DOI, sentinel.ErrNotFound when Crossref
// does not know the DOI, sentinel.ErrUnavailable on throttling, 5xx or
// transport failures.
func (c *Client) FetchWork(ctx context.Context, doi string) ([]byte, error) {
	doi = NormalizeDOI(doi)
	if doi == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "doi is required")
	}

	if document, ok := c.fromCache(ctx, doi); ok {
		return document, nil
	}

	if c.breaker != nil && !c.breaker.Allow() {
		if c.metrics != nil {
			c.metrics.IncrementCrossrefFetch("circuit_open")
		}
		return nil, fmt.Errorf("crossref circuit %s open: %w", c.breaker.Name(), sentinel.ErrUnavailable)
	}

	document, err := c.fetch(ctx, doi)
	c.recordBreaker(ctx, err)
	if err != nil {
		c.recordFetch(err)
		return nil, err
	}
	c.recordFetch(nil)

	if c.cache != nil {
		if err := c.cache.Set(ctx, doi, document, c.cacheTTL); err != nil {
			c.logWarn(ctx, "failed to cache crossref work", "doi", doi, "error", err)
		}
	}
	return document, nil
}

func (c *Client) fetch(ctx context.Context, doi string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + "/works/" + url.PathEscape(doi)
	if c.mailto != "" {
		endpoint += "?" + url.Values{"mailto": {c.mailto}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build crossref request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	ua := userAgent
	if c.mailto != "" {
		ua += " (mailto:" + c.mailto + ")"
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref request: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("crossref work %s: %w", doi, sentinel.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("crossref http %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("crossref http %d: %s", resp.StatusCode, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read crossref response: %w: %w", sentinel.ErrUnavailable, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("crossref work %s: %w (%d bytes)", doi, ErrDocumentTooLarge, maxBodyBytes)
	}
	return body, nil
}

func (c *Client) fromCache(ctx context.Context, doi string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	document, err := c.cache.Get(ctx, doi)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			c.logWarn(ctx, "crossref cache lookup failed", "doi", doi, "error", err)
		}
		if c.metrics != nil {
			c.metrics.RecordCacheMiss()
		}
		return nil, false
	}
	if c.metrics != nil {
		c.metrics.RecordCacheHit()
	}
	return document, true
}

// recordBreaker counts only upstream unavailability as a failure; a 404 means
// Crossref answered.
func (c *Client) recordBreaker(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	if err != nil && errors.Is(err, sentinel.ErrUnavailable) {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logWarn(ctx, "crossref circuit opened", "breaker", c.breaker.Name())
		}
		return
	}
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed && c.logger != nil {
		c.logger.InfoContext(ctx, "crossref circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordFetch(err error) {
	if c.metrics == nil {
		return
	}
	switch {
	case err == nil:
		c.metrics.IncrementCrossrefFetch("ok")
	case errors.Is(err, sentinel.ErrNotFound):
		c.metrics.IncrementCrossrefFetch("not_found")
	case errors.Is(err, sentinel.ErrUnavailable):
		c.metrics.IncrementCrossrefFetch("unavailable")
	default:
		c.metrics.IncrementCrossrefFetch("error")
	}
}

func (c *Client) logWarn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}
