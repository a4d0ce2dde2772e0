package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, seen)
}

func newTestLimiter(t *testing.T, opts RateLimitOptions) (*RateLimiter, http.Handler) {
	t.Helper()
	limiter, err := NewRateLimiter(opts, logger.NewNop())
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return limiter, h
}

func callFrom(h http.Handler, remoteIP, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteIP + ":5555"
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter(t *testing.T) {
	_, h := newTestLimiter(t, RateLimitOptions{RPS: 0.001, Burst: 2})

	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.1", ""))
	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.1", ""))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "10.0.0.1", ""))
	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.2", ""))
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	_, h := newTestLimiter(t, RateLimitOptions{RPS: 0.001, Burst: 1})

	assert.Equal(t, http.StatusNoContent, callFrom(h, "203.0.113.7", "1.1.1.1"))
	// Смена заголовка не дает нового лимита
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "203.0.113.7", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "203.0.113.7", "3.3.3.3"))
}

func TestRateLimiter_TrustedProxyForwardsClientAddress(t *testing.T) {
	_, h := newTestLimiter(t, RateLimitOptions{RPS: 0.001, Burst: 1, TrustedProxies: []string{"10.0.0.0/8"}})

	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.1.2.3", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "10.1.2.3", "198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.1.2.3", "198.51.100.2"))

	// Подделанный первый адрес не помогает: клиент - первый справа недоверенный адрес
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "10.1.2.3", "9.9.9.9, 198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "10.1.2.3", "198.51.100.1, 10.0.0.5"))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter, h := newTestLimiter(t, RateLimitOptions{RPS: 0.001, Burst: 1, IdleTTL: time.Minute})
	clock := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.1", ""))
	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.2", ""))
	assert.Len(t, limiter.visitors, 2)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, callFrom(h, "10.0.0.1", ""))

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, http.StatusNoContent, callFrom(h, "10.0.0.3", ""))
	assert.Len(t, limiter.visitors, 1, "idle clients are dropped")
}

func TestNewRateLimiter_InvalidTrustedProxy(t *testing.T) {
	_, err := NewRateLimiter(RateLimitOptions{RPS: 1, Burst: 1, TrustedProxies: []string{"not-an-ip"}}, logger.NewNop())
	assert.Error(t, err)
}

type observed struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct{ calls []observed }

func (f *fakeHTTPMetrics) ObserveHTTP(method, path string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/stylists/{stylistId}/drafts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stylists/st-9/drafts", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{http.MethodGet, "/stylists/{stylistId}/drafts", http.StatusAccepted}, m.calls[0])
}
