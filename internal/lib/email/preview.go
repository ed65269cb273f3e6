package email

// PreviewData holds sample values for rendering each template locally,
// keyed by template name then variable name.
var PreviewData = map[Template]map[string]string{
	TemplateInvoiceActivity: {
		"Kind":       "created",
		"CustomerID": "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		"Amount":     "45.50",
		"Status":     "pending",
		"Date":       "2026-10-19",
	},
}
