package email

import "embed"

// Template names an HTML template under templates/emails.
type Template string

const (
	// TemplateInvoiceActivity corresponds to templates/emails/invoice_activity.html
	TemplateInvoiceActivity Template = "invoice_activity"
)

//go:embed templates/emails/*.html
var templateFS embed.FS
