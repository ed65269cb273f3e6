package auth

import (
	"context"
	"errors"
	"net/url"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// CredentialsProviderID is the id the login form signs in with.
const CredentialsProviderID = "credentials"

// UserFinder looks a user up by email, returning nil when there is none.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// CredentialsProvider checks an email and password against stored bcrypt
// hashes.
type CredentialsProvider struct {
	users UserFinder
}

func NewCredentialsProvider(users UserFinder) *CredentialsProvider {
	return &CredentialsProvider{users: users}
}

func (p *CredentialsProvider) ID() string {
	return CredentialsProviderID
}

func (p *CredentialsProvider) Authorize(ctx context.Context, form url.Values) (*model.User, error) {
	creds := model.Credentials{
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}
	if err := validation.Struct(&creds); err != nil {
		return nil, nil
	}

	user, err := p.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// HashPassword returns the bcrypt hash stored for a new user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
