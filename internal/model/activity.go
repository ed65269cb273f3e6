package model

// InvoiceActivityKind names what happened to an invoice.
type InvoiceActivityKind string

const (
	InvoiceCreated InvoiceActivityKind = "created"
	InvoiceUpdated InvoiceActivityKind = "updated"
)

// InvoiceActivity describes a successful invoice mutation for notifications.
type InvoiceActivity struct {
	Kind       InvoiceActivityKind `json:"kind"`
	InvoiceID  string              `json:"invoice_id,omitempty"`
	CustomerID string              `json:"customer_id"`
	Amount     int64               `json:"amount"`
	Status     InvoiceStatus       `json:"status"`
	Date       string              `json:"date,omitempty"`
}
