package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceRepo(conn *recordingConn) (*InvoiceRepository, *recordingPool) {
	pool := &recordingPool{conn: conn}
	return NewInvoiceRepository(pool), pool
}

var input = model.InvoiceInput{CustomerID: "c1", AmountInCents: 4550, Status: model.InvoiceStatusPending}

func TestInvoiceInsert(t *testing.T) {
	conn := &recordingConn{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo, pool := newInvoiceRepo(conn)

	require.NoError(t, repo.Insert(context.Background(), input, "2026-10-19"))

	require.Len(t, conn.calls, 1)
	assert.Equal(t, "INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)", conn.calls[0].sql)
	assert.Equal(t, []any{"c1", int64(4550), "pending", "2026-10-19"}, conn.calls[0].args)
	assert.Equal(t, 1, pool.acquired)
	assert.Equal(t, 1, conn.released)
}

func TestInvoiceUpdate(t *testing.T) {
	conn := &recordingConn{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo, _ := newInvoiceRepo(conn)

	n, err := repo.Update(context.Background(), "inv-1", input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, conn.calls, 1)
	assert.Equal(t, "UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4", conn.calls[0].sql)
	assert.Equal(t, []any{"c1", int64(4550), "pending", "inv-1"}, conn.calls[0].args)
	assert.NotContains(t, conn.calls[0].sql, "date")
	assert.Equal(t, 1, conn.released)
}

func TestInvoiceDeleteMissingRowIsNoop(t *testing.T) {
	conn := &recordingConn{tag: pgconn.NewCommandTag("DELETE 0")}
	repo, _ := newInvoiceRepo(conn)

	n, err := repo.Delete(context.Background(), "inv-404")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.Len(t, conn.calls, 1)
	assert.Equal(t, "DELETE FROM invoices WHERE id = $1", conn.calls[0].sql)
	assert.Equal(t, []any{"inv-404"}, conn.calls[0].args)
	assert.Equal(t, 1, conn.released)
}

func TestInvoiceMutationErrorsReleaseOnce(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", TableName: "invoices", Message: "violates foreign key"}

	tests := []struct {
		name string
		run  func(*InvoiceRepository) error
	}{
		{"insert", func(r *InvoiceRepository) error { return r.Insert(context.Background(), input, "2026-10-19") }},
		{"update", func(r *InvoiceRepository) error { _, err := r.Update(context.Background(), "inv-1", input); return err }},
		{"delete", func(r *InvoiceRepository) error { _, err := r.Delete(context.Background(), "inv-1"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &recordingConn{execErr: pgErr}
			repo, _ := newInvoiceRepo(conn)

			err := tt.run(repo)
			require.Error(t, err)
			assert.ErrorIs(t, err, pgErr)
			assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
			assert.Equal(t, 1, conn.released)
		})
	}
}

func TestInvoiceReleasedOnPanic(t *testing.T) {
	conn := &recordingConn{panicMsg: "driver exploded"}
	repo, _ := newInvoiceRepo(conn)

	assert.PanicsWithValue(t, "driver exploded", func() {
		_, _ = repo.Delete(context.Background(), "inv-1")
	})
	assert.Equal(t, 1, conn.released)
}

func TestInvoiceAcquireFailure(t *testing.T) {
	pool := &recordingPool{conn: &recordingConn{}, acquireErr: errBoom}
	repo := NewInvoiceRepository(pool)

	_, err := repo.Delete(context.Background(), "inv-1")
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, pool.conn.released)
	assert.Empty(t, pool.conn.calls)
}

func TestInvoiceListQueryError(t *testing.T) {
	conn := &recordingConn{queryErr: errBoom}
	repo, _ := newInvoiceRepo(conn)

	_, err := repo.List(context.Background(), 10)
	assert.ErrorIs(t, err, errBoom)
	require.Len(t, conn.calls, 1)
	assert.Equal(t, []any{10}, conn.calls[0].args)
	assert.Equal(t, 1, conn.released)
}
