package email

import (
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/model"
)

// SendInvoiceActivityEmail tells to that an invoice was created or updated.
func (c *Client) SendInvoiceActivityEmail(to string, activity model.InvoiceActivity) error {
	data := map[string]string{
		"Kind":       string(activity.Kind),
		"InvoiceID":  activity.InvoiceID,
		"CustomerID": activity.CustomerID,
		"Amount":     model.FormatCents(activity.Amount),
		"Status":     string(activity.Status),
		"Date":       activity.Date,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("Invoice %s", activity.Kind),
		TemplateInvoiceActivity,
		data,
	)
}
