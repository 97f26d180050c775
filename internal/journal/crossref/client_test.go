package crossref

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-service/internal/journal/metrics"
	"journal-service/pkg/platform/circuit"
	dErrors "journal-service/pkg/domain-errors"
	"journal-service/pkg/platform/sentinel"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, doi string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	b, ok := c.entries[doi]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return b, nil
}

func (c *memoryCache) Set(_ context.Context, doi string, document []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[doi] = document
	return nil
}

func newWorkServer(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	work, err := os.ReadFile("testdata/work.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/works/10.4137/cmc.s38446", r.URL.Path)
		assert.Equal(t, "dev@example.org", r.URL.Query().Get("mailto"))
		assert.Contains(t, r.Header.Get("User-Agent"), "mailto:dev@example.org")
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(work)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeDOI(t *testing.T) {
	tests := map[string]string{
		"10.4137/CMC.S38446":                    "10.4137/cmc.s38446",
		" https://doi.org/10.4137/CMC.S38446 ":  "10.4137/cmc.s38446",
		"http://dx.doi.org/10.4137/cmc.s38446":  "10.4137/cmc.s38446",
		"doi:10.4137/cmc.s38446":                "10.4137/cmc.s38446",
		"   ":                                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDOI(in), "NormalizeDOI(%q)", in)
	}
}

func TestFetchWork(t *testing.T) {
	t.Run("returns the work document and translates", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusOK, &hits)
		client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0))

		document, err := client.FetchWork(context.Background(), "https://doi.org/10.4137/CMC.S38446")
		require.NoError(t, err)

		candidate, err := Translate(document)
		require.NoError(t, err)
		assert.Equal(t, "Clinical Medicine Insights: Cardiology", candidate.Name)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("empty doi is a validation error", func(t *testing.T) {
		client := NewClient()
		_, err := client.FetchWork(context.Background(), "  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusNotFound, &hits)
		client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("maps throttling and 5xx to ErrUnavailable", func(t *testing.T) {
		for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
			var hits atomic.Int32
			srv := newWorkServer(t, status, &hits)
			client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0))

			_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
			assert.ErrorIs(t, err, sentinel.ErrUnavailable, "status %d", status)
		}
	})

	t.Run("other statuses are plain errors", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusBadRequest, &hits)
		client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
		assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("oversized document is rejected, not truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(bytes.Repeat([]byte(" "), maxBodyBytes+1))
		}))
		t.Cleanup(srv.Close)
		m := metrics.NewWithRegisterer(prometheus.NewRegistry())
		client := NewClient(WithBaseURL(srv.URL), WithRateLimit(0), WithMetrics(m))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		require.ErrorIs(t, err, ErrDocumentTooLarge)
		assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossrefFetches.WithLabelValues("error")))
	})

	t.Run("document at the limit is accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(bytes.Repeat([]byte(" "), maxBodyBytes))
		}))
		t.Cleanup(srv.Close)
		client := NewClient(WithBaseURL(srv.URL), WithRateLimit(0))

		document, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		require.NoError(t, err)
		assert.Len(t, document, maxBodyBytes)
	})

	t.Run("unreachable server is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := NewClient(WithBaseURL(srv.URL), WithRateLimit(0))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}

func TestFetchWorkCache(t *testing.T) {
	t.Run("second fetch is served from cache", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusOK, &hits)
		m := metrics.NewWithRegisterer(prometheus.NewRegistry())
		cache := newMemoryCache()
		client := NewClient(
			WithBaseURL(srv.URL),
			WithMailto("dev@example.org"),
			WithRateLimit(0),
			WithCache(cache, time.Hour),
			WithMetrics(m),
		)

		first, err := client.FetchWork(context.Background(), "10.4137/CMC.S38446")
		require.NoError(t, err)
		second, err := client.FetchWork(context.Background(), "doi:10.4137/cmc.s38446")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), hits.Load())
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossrefCacheHits))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossrefCacheMiss))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossrefFetches.WithLabelValues("ok")))
	})

	t.Run("cache failures fall through to crossref", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusOK, &hits)
		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		cache.setErr = errors.New("redis down")
		client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0), WithCache(cache, time.Hour))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestFetchWorkBreaker(t *testing.T) {
	t.Run("opens after repeated unavailability and fails fast", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusServiceUnavailable, &hits)
		m := metrics.NewWithRegisterer(prometheus.NewRegistry())
		breaker := circuit.New("crossref", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
		client := NewClient(
			WithBaseURL(srv.URL),
			WithMailto("dev@example.org"),
			WithRateLimit(0),
			WithBreaker(breaker),
			WithMetrics(m),
		)

		for range 2 {
			_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
			assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		}
		assert.True(t, breaker.IsOpen())

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Equal(t, int32(2), hits.Load(), "open circuit must not reach crossref")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossrefFetches.WithLabelValues("circuit_open")))
	})

	t.Run("not found does not trip the breaker", func(t *testing.T) {
		var hits atomic.Int32
		srv := newWorkServer(t, http.StatusNotFound, &hits)
		breaker := circuit.New("crossref", circuit.WithFailureThreshold(1))
		client := NewClient(WithBaseURL(srv.URL), WithMailto("dev@example.org"), WithRateLimit(0), WithBreaker(breaker))

		_, err := client.FetchWork(context.Background(), "10.4137/cmc.s38446")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.False(t, breaker.IsOpen())
	})
}
