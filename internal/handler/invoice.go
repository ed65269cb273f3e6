package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/deppfellow/go-invoicing/internal/validation"
	"github.com/labstack/echo/v4"
)

// InvoiceActions is the invoice service as the HTTP layer sees it.
type InvoiceActions interface {
	CreateInvoice(ctx context.Context, form *model.InvoiceForm) (model.ActionState, error)
	UpdateInvoice(ctx context.Context, id string, form *model.InvoiceForm) (model.ActionState, error)
	DeleteInvoice(ctx context.Context, id string) model.ActionState
	ListInvoices(ctx context.Context) ([]model.InvoiceRow, error)
}

type InvoiceHandler struct {
	Handler
	invoices InvoiceActions
}

func NewInvoiceHandler(s *server.Server, invoices InvoiceActions) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
	}
}

// ------------------------------------------------------------
// requests

type CreateInvoiceRequest = model.InvoiceForm

type UpdateInvoiceRequest struct {
	ID         string `param:"id" validate:"required"`
	CustomerID string `form:"customerId" json:"customerId"`
	Amount     string `form:"amount" json:"amount"`
	Status     string `form:"status" json:"status"`
}

func (r *UpdateInvoiceRequest) Form() *model.InvoiceForm {
	return &model.InvoiceForm{
		CustomerID: r.CustomerID,
		Amount:     r.Amount,
		Status:     r.Status,
	}
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return r.Form().Validate()
}

type DeleteInvoiceRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *DeleteInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

type ListInvoicesRequest struct{}

func (r *ListInvoicesRequest) Validate() error {
	return nil
}

// ------------------------------------------------------------
// endpoints

func (h *InvoiceHandler) Create() echo.HandlerFunc {
	return HandleAction(h.Handler, func(c echo.Context, req *CreateInvoiceRequest) (model.ActionState, error) {
		return h.invoices.CreateInvoice(c.Request().Context(), req)
	}, http.StatusNoContent, http.StatusInternalServerError, &CreateInvoiceRequest{})
}

func (h *InvoiceHandler) Update() echo.HandlerFunc {
	return HandleAction(h.Handler, func(c echo.Context, req *UpdateInvoiceRequest) (model.ActionState, error) {
		return h.invoices.UpdateInvoice(c.Request().Context(), req.ID, req.Form())
	}, http.StatusNoContent, http.StatusInternalServerError, &UpdateInvoiceRequest{})
}

func (h *InvoiceHandler) Delete() echo.HandlerFunc {
	return HandleAction(h.Handler, func(c echo.Context, req *DeleteInvoiceRequest) (model.ActionState, error) {
		return h.invoices.DeleteInvoice(c.Request().Context(), req.ID), nil
	}, http.StatusNoContent, http.StatusInternalServerError, &DeleteInvoiceRequest{})
}

func (h *InvoiceHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *ListInvoicesRequest) ([]model.InvoiceRow, error) {
		return h.invoices.ListInvoices(c.Request().Context())
	}, http.StatusOK, &ListInvoicesRequest{})
}
