package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	insertInvoiceSQL = `INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)`
	updateInvoiceSQL = `UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`
	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`

	listInvoicesSQL = `
SELECT i.id, i.customer_id, c.name, c.email, c.image_url, i.amount, i.status, to_char(i.date, 'YYYY-MM-DD')
FROM invoices i
JOIN customers c ON c.id = i.customer_id
ORDER BY i.date DESC, i.id
LIMIT $1`
)

type InvoiceRepository struct {
	pool Pool
}

func NewInvoiceRepository(pool Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Insert stores a new invoice dated date (YYYY-MM-DD). The id is assigned by
// the database.
func (r *InvoiceRepository) Insert(ctx context.Context, in model.InvoiceInput, date string) error {
	_, err := exec(ctx, r.pool, insertInvoiceSQL, in.CustomerID, in.AmountInCents, string(in.Status), date)
	if err != nil {
		return fmt.Errorf("table:invoices: insert: %w", err)
	}
	return nil
}

// Update rewrites customer, amount and status of invoice id. An unknown id
// affects zero rows and is not an error.
func (r *InvoiceRepository) Update(ctx context.Context, id string, in model.InvoiceInput) (int64, error) {
	n, err := exec(ctx, r.pool, updateInvoiceSQL, in.CustomerID, in.AmountInCents, string(in.Status), id)
	if err != nil {
		return 0, fmt.Errorf("table:invoices: update %s: %w", id, err)
	}
	return n, nil
}

// Delete removes invoice id. An unknown id affects zero rows and is not an
// error.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	n, err := exec(ctx, r.pool, deleteInvoiceSQL, id)
	if err != nil {
		return 0, fmt.Errorf("table:invoices: delete %s: %w", id, err)
	}
	return n, nil
}

// List returns the newest invoices with their customer details.
func (r *InvoiceRepository) List(ctx context.Context, limit int) ([]model.InvoiceRow, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("table:invoices: list: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, listInvoicesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("table:invoices: list: %w", err)
	}

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.InvoiceRow, error) {
		var inv model.InvoiceRow
		var status string
		err := row.Scan(&inv.ID, &inv.CustomerID, &inv.CustomerName, &inv.CustomerEmail,
			&inv.ImageURL, &inv.Amount, &status, &inv.Date)
		inv.Status = model.InvoiceStatus(status)
		return inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("table:invoices: list: %w", err)
	}
	return invoices, nil
}
