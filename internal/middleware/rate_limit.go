package middleware

import (
	"github.com/deppfellow/go-banking/internal/errs"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles clients by IP address.
//
// Counters live in an in-process token bucket store, so each instance of
// the API enforces its own limit. Rejected requests are answered with a
// 429 envelope and reported to New Relic as RateLimitHit events.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RateLimiter limits each client IP to server.rate_limit requests per
// second. A limit of zero disables it.
func (r *RateLimitMiddleware) RateLimiter() echo.MiddlewareFunc {
	limit := r.server.Config.Server.RateLimit
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(limit)),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, please try again later.")
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event tagged with the
// route pattern, not the raw URL, so hits on /accounts/:iban group together.
// It is a no-op when New Relic is not configured.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordCustomEvent("RateLimitHit", map[string]any{
		"endpoint": endpoint,
	})
}
