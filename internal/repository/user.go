package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	findUserByEmailSQL = `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	insertUserSQL      = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
)

type UserRepository struct {
	pool Pool
}

func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail returns the user with that email, or nil when there is none.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("table:users: find by email: %w", err)
	}
	defer conn.Release()

	var u model.User
	err = conn.QueryRow(ctx, findUserByEmailSQL, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("table:users: find by email: %w", err)
	}
	return &u, nil
}

// Create stores a user. passwordHash must already be a bcrypt hash.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("table:users: create: %w", err)
	}
	defer conn.Release()

	u := model.User{Name: name, Email: email, Password: passwordHash}
	if err := conn.QueryRow(ctx, insertUserSQL, name, email, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("table:users: create: %w", err)
	}
	return &u, nil
}
