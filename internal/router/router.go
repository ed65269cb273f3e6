// Package router builds the echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"net/http"

	"github.com/deppfellow/go-invoicing/internal/handler"
	"github.com/deppfellow/go-invoicing/internal/middleware"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds tracing, tracing feeds the
	// request logger, and the logger is needed by everything after it.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerAuthRoutes(router, h, middlewares)
	registerInvoiceRoutes(router, h, middlewares)

	return router
}

func registerAuthRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	csrf := m.CSRF.Protect()

	// GET hands out the CSRF token the login form needs.
	r.GET("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, csrf)
	r.POST("/login", h.Auth.Login(), m.RateLimit.Login(), csrf)
	r.POST("/logout", h.Auth.Logout(), csrf)
}

func registerInvoiceRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	dashboard := r.Group("/dashboard", m.Auth.RequireAuth, m.CSRF.Protect())

	invoices := dashboard.Group("/invoices")
	invoices.GET("", h.Invoices.List())
	invoices.POST("", h.Invoices.Create())
	invoices.POST("/:id", h.Invoices.Update())
	invoices.PUT("/:id", h.Invoices.Update())
	invoices.POST("/:id/delete", h.Invoices.Delete())
	invoices.DELETE("/:id", h.Invoices.Delete())
}
