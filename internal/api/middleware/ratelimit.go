package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
)

// RateLimitConfig configures one named limiter.
type RateLimitConfig struct {
	// Name scopes the counters, so two limiters on one store do not share keys.
	Name string
	// Rate uses the ulule format, e.g. "10-M" or "100-H".
	Rate  string
	Store limiter.Store
	// Rejected is incremented on every 429. Optional.
	Rejected prometheus.Counter
	Log      zerolog.Logger
}

// RateLimit limits requests per client IP. Store failures let the request through.
func RateLimit(cfg RateLimitConfig) (echo.MiddlewareFunc, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("rate limit %q: %w", cfg.Name, err)
	}
	lim := limiter.New(cfg.Store, rate)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Name + ":" + c.RealIP()
			lc, err := lim.Get(c.Request().Context(), key)
			if err != nil {
				cfg.Log.Warn().Err(err).Str("limiter", cfg.Name).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

			if lc.Reached {
				if cfg.Rejected != nil {
					cfg.Rejected.Inc()
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}, nil
}
