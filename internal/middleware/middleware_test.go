package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"makwell-storefront/internal/logger"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestVisitorMiddleware(t *testing.T) {
	var got string
	handler := VisitorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.VisitorFrom(r.Context())
	}))

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "VisitorHeader", headers: map[string]string{VisitorHeader: "abc-123"}, want: "visitor:abc-123"},
		{name: "DeviceHeader", headers: map[string]string{"X-Device-ID": "dev_9"}, want: "device:dev_9"},
		{name: "InvalidVisitorFallsBack", headers: map[string]string{VisitorHeader: "a:b/c"}, want: "ip:192.0.2.1"},
		{name: "IPFallback", want: "ip:192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimiter_Middleware(t *testing.T) {
	t.Run("StrictTierForCheckout", func(t *testing.T) {
		l := NewLimiter()
		handler := VisitorMiddleware(l.Middleware(okHandler()))

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.Header.Set(VisitorHeader, "v1")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
	})

	t.Run("TiersAreSeparateBuckets", func(t *testing.T) {
		l := NewLimiter()
		handler := VisitorMiddleware(l.Middleware(okHandler()))

		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.Header.Set(VisitorHeader, "v1")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(VisitorHeader, "v1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("VisitorsAreIsolated", func(t *testing.T) {
		l := NewLimiter()
		handler := VisitorMiddleware(l.Middleware(okHandler()))

		for i := 0; i < burstGeneral+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			req.Header.Set(VisitorHeader, "greedy")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(VisitorHeader, "polite")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResolveRateTier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	_, _, tier := resolveRateTier(req)
	assert.Equal(t, TierGeneral, tier)

	req.Header.Set("X-Client-Type", "frontend-heavy")
	_, burst, tier := resolveRateTier(req)
	assert.Equal(t, TierFrontend, tier)
	assert.Equal(t, burstFrontend, burst)

	req = httptest.NewRequest(http.MethodPost, "/checkout", nil)
	_, _, tier = resolveRateTier(req)
	assert.Equal(t, TierStrict, tier)
}

func TestLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l := NewLimiter()
	l.now = func() time.Time { return now }

	l.getVisitor("ip:1:general", limitGeneral, burstGeneral)
	now = now.Add(time.Minute)
	l.getVisitor("ip:2:general", limitGeneral, burstGeneral)
	now = now.Add(150 * time.Second)

	removed := l.Cleanup(visitorIdleTimeout)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.Len())
}

func TestCORS(t *testing.T) {
	handler := CORS("https://makwell.example")(okHandler())

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/cart/items", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://makwell.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), VisitorHeader)
	})

	t.Run("NormalRequest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://makwell.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("DefaultsToAnyOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		CORS("")(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
