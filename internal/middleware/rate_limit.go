package middleware

import (
	"net/http"
	"time"

	"github.com/deppfellow/go-invoicing/internal/errs"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Login attempts allowed per client IP.
const (
	LoginRateLimit = rate.Limit(5.0 / 60.0)
	LoginBurst     = 5
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{server: s}
}

// Login limits sign-in attempts per client IP and answers 429 once the
// budget is spent.
func (r *RateLimitMiddleware) Login() echo.MiddlewareFunc {
	return r.limit(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      LoginRateLimit,
		Burst:     LoginBurst,
		ExpiresIn: 10 * time.Minute,
	}))
}

func (r *RateLimitMiddleware) limit(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Could not identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return &errs.HTTPError{
				Code:     errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
				Message:  "Too many attempts. Please try again later.",
				Status:   http.StatusTooManyRequests,
				Override: true,
			}
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
