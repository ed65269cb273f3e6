package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/model"
)

const insertCustomerSQL = `INSERT INTO customers (name, email, image_url) VALUES ($1, $2, $3) RETURNING id, created_at`

type CustomerRepository struct {
	pool Pool
}

func NewCustomerRepository(pool Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Create(ctx context.Context, name, email, imageURL string) (*model.Customer, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("table:customers: create: %w", err)
	}
	defer conn.Release()

	c := model.Customer{Name: name, Email: email, ImageURL: imageURL}
	if err := conn.QueryRow(ctx, insertCustomerSQL, name, email, imageURL).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("table:customers: create: %w", err)
	}
	return &c, nil
}
