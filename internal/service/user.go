package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/lib/auth"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/validation"
)

// UserStore creates users.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
}

// CustomerStore creates customers.
type CustomerStore interface {
	Create(ctx context.Context, name, email, imageURL string) (*model.Customer, error)
}

// AccountService provisions users and customers from the CLI.
type AccountService struct {
	users     UserStore
	customers CustomerStore
}

func NewAccountService(users UserStore, customers CustomerStore) *AccountService {
	return &AccountService{users: users, customers: customers}
}

type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type NewCustomer struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url|startswith=/"`
}

// CreateUser stores a user with a bcrypt hash of the password.
func (s *AccountService) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, in.Name, in.Email, hash)
}

func (s *AccountService) CreateCustomer(ctx context.Context, in NewCustomer) (*model.Customer, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	return s.customers.Create(ctx, in.Name, in.Email, in.ImageURL)
}
