package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/errs"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Auth: config.AuthConfig{
			SessionSecret: strings.Repeat("s", 32),
			CSRFKey:       strings.Repeat("k", 32),
		},
	}
	return &server.Server{
		Config:   cfg,
		Logger:   &logger,
		Sessions: server.NewSessionStore(cfg.Auth, cfg.Primary.Env),
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.GET("/dashboard/invoices", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, model.LoginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.Use(NewContextEnhancer(s).EnhanceContext())
	e.POST("/login", func(c echo.Context) error {
		if err := StartSession(c, s.Sessions, "u1"); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.POST("/logout", func(c echo.Context) error {
		if err := EndSession(c, s.Sessions); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, GetUserID(c))
	}, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	expired := rec.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Negative(t, expired[0].MaxAge)
}

func TestRequireAuthIgnoresForeignCookie(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.GET("/dashboard", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewAuthMiddleware(s).RequireAuth)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "forged"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGlobalErrorHandler(t *testing.T) {
	validationErr := validator.New().Struct(&struct {
		Amount string `validate:"required"`
	}{})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", errs.NewForbiddenError("Forbidden", false), http.StatusForbidden, "FORBIDDEN"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"validation", validationErr, http.StatusBadRequest, "BAD_REQUEST"},
		{"unique violation", &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
		{"anything else", errors.New("kaboom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestGlobalErrorHandlerUniqueViolationMessage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}
	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "A User with this Email already exists", body.Message)
	assert.True(t, body.Override)
}

func TestRateLimitDenies(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, NewRateLimitMiddleware(s).Login())

	var last int
	for i := 0; i < LoginBurst+1; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
