package middleware

import (
	"github.com/deppfellow/go-invoicing/internal/logger"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey holds the signed-in user's id in the echo context.
	UserIDKey = "user_id"

	// LoggerKey holds the request-scoped logger in the echo context.
	LoggerKey = "logger"
)

// ContextEnhancer attaches a request-scoped logger to every request.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext builds a logger carrying request_id, method, path, ip and,
// when a New Relic transaction exists, the trace ids.
//
// The logger is stored in the echo context for handlers and in the request's
// context.Context (zerolog.Ctx) for services and repositories.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			setLogger(c, contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// SetUserID records the signed-in user on the request and adds user_id to
// the request logger.
func SetUserID(c echo.Context, userID string) {
	c.Set(UserIDKey, userID)
	setLogger(c, GetLogger(c).With().Str("user_id", userID).Logger())
}

// GetUserID returns the signed-in user's id, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	l := zerolog.Nop()
	return &l
}
