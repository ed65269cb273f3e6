package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/deppfellow/go-invoicing/internal/lib/auth"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/rs/zerolog"
)

const (
	invalidCredentialsMessage = "Invalid credentials."
	signInFailedMessage       = "Something went wrong."
)

// SignInRoutine signs a form in with a named provider.
type SignInRoutine interface {
	SignIn(ctx context.Context, providerID string, form url.Values) (*model.User, error)
}

type AuthService struct {
	signIn SignInRoutine
}

func NewAuthService(signIn SignInRoutine) *AuthService {
	return &AuthService{signIn: signIn}
}

// Authenticate signs in with the credentials provider.
//
// It returns the user on success. A categorized sign-in failure becomes a
// message for the login form. Any other error is returned unchanged.
func (s *AuthService) Authenticate(ctx context.Context, form url.Values) (*model.User, string, error) {
	user, err := s.signIn.SignIn(ctx, auth.CredentialsProviderID, form)
	if err == nil {
		return user, "", nil
	}

	var authErr *auth.AuthError
	if !errors.As(err, &authErr) {
		return nil, "", err
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("auth_error", string(authErr.Type)).
		Msg("sign-in failed")

	switch authErr.Type {
	case auth.CredentialsSignin:
		return nil, invalidCredentialsMessage, nil
	default:
		return nil, signInFailedMessage, nil
	}
}
