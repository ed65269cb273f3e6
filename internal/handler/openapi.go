package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API reference UI. The page loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	pagePath string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler:  NewHandler(s),
		pagePath: "static/openapi.html",
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(h.pagePath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTML(http.StatusOK, string(page))
}
