// Package model holds the domain types shared by the handler, service and
// repository layers: invoices, customers, users, and the result of a form
// action.
package model

// Paths the application navigates to after an action.
const (
	InvoicesPath  = "/dashboard/invoices"
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

// ActionState is what a form action hands back to the HTTP layer.
//
// A non-empty Redirect means the action succeeded and the client should be
// sent there. A non-empty Message is a recoverable failure shown next to the
// form. Both empty means success with nothing further to do.
type ActionState struct {
	Message  string `json:"message,omitempty"`
	Redirect string `json:"-"`
}

// Failed reports whether the action ended in a recoverable failure.
func (s ActionState) Failed() bool {
	return s.Message != ""
}

// RedirectTo is the successful result that navigates to path.
func RedirectTo(path string) ActionState {
	return ActionState{Redirect: path}
}

// Failure is the recoverable-failure result carrying message.
func Failure(message string) ActionState {
	return ActionState{Message: message}
}
