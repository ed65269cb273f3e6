package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/deppfellow/go-invoicing/internal/errs"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// CSRFTokenHeader carries the token on safe responses and is accepted on
// unsafe requests.
const CSRFTokenHeader = "X-CSRF-Token"

// CSRFMiddleware protects the form routes with gorilla/csrf.
type CSRFMiddleware struct {
	server *server.Server
}

func NewCSRFMiddleware(s *server.Server) *CSRFMiddleware {
	return &CSRFMiddleware{server: s}
}

// Protect rejects unsafe requests without a valid token with a 403 and
// exposes the current token on every response.
//
// Outside production the request is marked as plain HTTP so the referer
// check does not demand TLS.
func (m *CSRFMiddleware) Protect() echo.MiddlewareFunc {
	cfg := m.server.Config
	secure := cfg.Auth.SecureCookie || cfg.Primary.Env == "production"

	protect := csrf.Protect(
		[]byte(cfg.Auth.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.server.Logger.Warn().
				Err(csrf.FailureReason(r)).
				Str("path", r.URL.Path).
				Msg("csrf check failed")

			err := errs.NewForbiddenError("Invalid or missing CSRF token", true)
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(err.Status)
			if encErr := json.NewEncoder(w).Encode(err); encErr != nil {
				m.server.Logger.Error().Err(encErr).Msg("failed to write JSON response")
			}
		})),
	)

	wrapped := echo.WrapMiddleware(protect)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		exposeToken := func(c echo.Context) error {
			c.Response().Header().Set(CSRFTokenHeader, csrf.Token(c.Request()))
			return next(c)
		}
		protected := wrapped(exposeToken)

		return func(c echo.Context) error {
			if !secure {
				c.SetRequest(csrf.PlaintextHTTPRequest(c.Request()))
			}
			return protected(c)
		}
	}
}
