// Package auth implements credential sign-in.
//
// An Authenticator dispatches a submitted form to a Provider by id. Failures
// are reported as *AuthError carrying a Type, so callers can turn them into
// messages without inspecting provider internals.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/deppfellow/go-invoicing/internal/model"
)

// ErrorType classifies a failed sign-in.
type ErrorType string

const (
	// CredentialsSignin means the credentials were rejected.
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError means the provider failed while checking them.
	CallbackRouteError ErrorType = "CallbackRouteError"
	// Configuration means the requested provider does not exist.
	Configuration ErrorType = "Configuration"
)

// AuthError is a categorized sign-in failure.
type AuthError struct {
	Type ErrorType
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return string(e.Type)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Provider checks one kind of credentials.
//
// Authorize returns (nil, nil) when the credentials are simply wrong and an
// error only when it could not decide.
type Provider interface {
	ID() string
	Authorize(ctx context.Context, form url.Values) (*model.User, error)
}

type Authenticator struct {
	providers map[string]Provider
}

func NewAuthenticator(providers ...Provider) *Authenticator {
	a := &Authenticator{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		a.providers[p.ID()] = p
	}
	return a
}

// SignIn authorizes form with the provider named providerID.
//
// Context cancellation and deadline errors are returned as they are; every
// other failure is an *AuthError.
func (a *Authenticator) SignIn(ctx context.Context, providerID string, form url.Values) (*model.User, error) {
	provider, ok := a.providers[providerID]
	if !ok {
		return nil, &AuthError{Type: Configuration, Err: fmt.Errorf("unknown provider %q", providerID)}
	}

	user, err := provider.Authorize(ctx, form)
	switch {
	case err == nil && user == nil:
		return nil, &AuthError{Type: CredentialsSignin}
	case err == nil:
		return user, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return nil, err
	}
	return nil, &AuthError{Type: CallbackRouteError, Err: err}
}
