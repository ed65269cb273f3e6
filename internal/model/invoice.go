package model

import (
	"strings"

	"github.com/deppfellow/go-invoicing/internal/errs"
	"github.com/deppfellow/go-invoicing/internal/validation"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// InvoiceRow is one line of the invoice list, joined with its customer.
type InvoiceRow struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"name"`
	CustomerEmail string        `json:"email"`
	ImageURL      string        `json:"imageUrl"`
	Amount        int64         `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	Date          string        `json:"date"`
}

// InvoiceForm is the raw create/update submission. Every field arrives as
// text; Parse turns it into an InvoiceInput.
type InvoiceForm struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"required,numeric"`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

func (f *InvoiceForm) Validate() error {
	return validation.Struct(f)
}

// InvoiceInput is a validated form with the amount already in cents.
type InvoiceInput struct {
	CustomerID    string
	AmountInCents int64
	Status        InvoiceStatus
}

// Parse checks the form and converts it.
//
// The amount is parsed as a decimal and scaled to cents with half-away-from-
// zero rounding, so "45.5" becomes 4550 and "0.295" becomes 30.
func (f *InvoiceForm) Parse() (InvoiceInput, error) {
	if err := f.Validate(); err != nil {
		return InvoiceInput{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return InvoiceInput{}, errs.NewFieldValidationError("amount", "must be a number")
	}

	status := InvoiceStatus(f.Status)
	if !status.Valid() {
		return InvoiceInput{}, errs.NewFieldValidationError("status", "must be one of: pending paid")
	}

	return InvoiceInput{
		CustomerID:    f.CustomerID,
		AmountInCents: ToCents(amount),
		Status:        status,
	}, nil
}

// ToCents scales a currency amount to whole cents.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FormatCents renders cents as a plain decimal amount, e.g. 4550 -> "45.50".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
