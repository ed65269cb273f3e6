package errs

import "strings"

// FieldError is a validation problem tied to one form field.
//
//	{ "field": "amount", "error": "must be a number" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect asks the client to navigate to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction attached to an error,
// e.g. "redirect to /login".
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every handler failure is funnelled into.
//
//   - Code: machine-friendly code (e.g. "BAD_REQUEST", "INVOICE_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to end users verbatim.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
	Action *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its fields, so
// errors.Is(err, &HTTPError{}) answers "is this an HTTP error at all".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
