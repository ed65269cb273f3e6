package handler

import (
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/deppfellow/go-invoicing/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Invoices *InvoiceHandler
	Auth     *AuthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Invoices: NewInvoiceHandler(s, services.Invoices),
		Auth:     NewAuthHandler(s, services.Auth),
	}
}
