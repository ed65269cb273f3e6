package router

import (
	"github.com/deppfellow/go-invoicing/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints that sit outside the dashboard:
// health, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
