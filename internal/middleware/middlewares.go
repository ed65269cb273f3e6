package middleware

import (
	"github.com/deppfellow/go-invoicing/internal/server"
)

// Middlewares groups every middleware component so the router is built from
// a single value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	CSRF            *CSRFMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares builds all middleware from the application container. The
// New Relic application is nil when the agent is off and tracing becomes a
// no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		CSRF:            NewCSRFMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
