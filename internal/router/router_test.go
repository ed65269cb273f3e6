package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/handler"
	"github.com/deppfellow/go-invoicing/internal/middleware"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type noopInvoices struct{}

func (noopInvoices) CreateInvoice(context.Context, *model.InvoiceForm) (model.ActionState, error) {
	return model.RedirectTo(model.InvoicesPath), nil
}

func (noopInvoices) UpdateInvoice(context.Context, string, *model.InvoiceForm) (model.ActionState, error) {
	return model.RedirectTo(model.InvoicesPath), nil
}

func (noopInvoices) DeleteInvoice(context.Context, string) model.ActionState {
	return model.ActionState{}
}

func (noopInvoices) ListInvoices(context.Context) ([]model.InvoiceRow, error) {
	return []model.InvoiceRow{}, nil
}

type noopAuth struct{}

func (noopAuth) Authenticate(context.Context, url.Values) (*model.User, string, error) {
	return nil, "Invalid credentials.", nil
}

func newTestRouter() *echo.Echo {
	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Auth: config.AuthConfig{
			SessionSecret: strings.Repeat("s", 32),
			CSRFKey:       strings.Repeat("k", 32),
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	s := &server.Server{
		Config:   cfg,
		Logger:   &logger,
		Sessions: server.NewSessionStore(cfg.Auth, cfg.Primary.Env),
	}

	h := &handler.Handlers{
		Health:   handler.NewHealthHandler(s),
		OpenAPI:  handler.NewOpenAPIHandler(s),
		Invoices: handler.NewInvoiceHandler(s, noopInvoices{}),
		Auth:     handler.NewAuthHandler(s, noopAuth{}),
	}
	return NewRouter(s, h, middleware.NewMiddlewares(s))
}

func TestDashboardRequiresSession(t *testing.T) {
	r := newTestRouter()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/dashboard/invoices"},
		{http.MethodPost, "/dashboard/invoices"},
		{http.MethodPut, "/dashboard/invoices/inv-1"},
		{http.MethodDelete, "/dashboard/invoices/inv-1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, model.LoginPath, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestLoginRequiresCSRFToken(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a%40b.co&password=secret1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginPageIssuesCSRFToken(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.CSRFTokenHeader))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestStatusRoute(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	// No DB or Redis is attached, so every enabled check is skipped.
	assert.Equal(t, http.StatusOK, rec.Code)
}
