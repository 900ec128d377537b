package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	e := echo.New()
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_rejected_total"})
	mw, err := RateLimit(RateLimitConfig{
		Name:     "login",
		Rate:     "2-M",
		Store:    memory.NewStore(),
		Rejected: rejected,
		Log:      zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func() (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		return rec, handler(e.NewContext(req, rec))
	}

	for i := 0; i < 2; i++ {
		rec, err := call()
		if err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Fatalf("missing limit header")
		}
	}

	_, err = call()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if got := testutil.ToFloat64(rejected); got != 1 {
		t.Fatalf("expected 1 rejection, got %v", got)
	}
}

func TestRateLimit_SeparatesClients(t *testing.T) {
	e := echo.New()
	mw, err := RateLimit(RateLimitConfig{Name: "public", Rate: "1-M", Store: memory.NewStore(), Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/public/track/AST-2025-001", nil)
		req.RemoteAddr = addr
		if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("client %s limited too early: %v", addr, err)
		}
	}
}

func TestRateLimit_InvalidRate(t *testing.T) {
	if _, err := RateLimit(RateLimitConfig{Name: "bad", Rate: "ten per minute", Store: memory.NewStore()}); err == nil {
		t.Fatal("expected error for malformed rate")
	}
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	e := echo.New()
	extractor, err := ClientIPExtractor(nil)
	if err != nil {
		t.Fatalf("ClientIPExtractor: %v", err)
	}
	e.IPExtractor = extractor

	mw, err := RateLimit(RateLimitConfig{Name: "login", Rate: "2-M", Store: memory.NewStore(), Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	passed := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("1.2.3.%d", i))
		req.Header.Set(echo.HeaderXRealIP, fmt.Sprintf("5.6.7.%d", i))
		if err := handler(e.NewContext(req, httptest.NewRecorder())); err == nil {
			passed++
		}
	}
	if passed != 2 {
		t.Fatalf("expected 2 requests through, got %d", passed)
	}
}
