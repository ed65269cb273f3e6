// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Conn is a connection checked out of a Pool. Callers must Release it
// exactly once.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Release()
}

// Pool hands out connections.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// pgxPool adapts *pgxpool.Pool to Pool.
type pgxPool struct {
	pool *pgxpool.Pool
}

// NewPool wraps a pgx pool.
func NewPool(pool *pgxpool.Pool) Pool {
	return &pgxPool{pool: pool}
}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// exec runs one statement on a freshly acquired connection and reports the
// number of affected rows. The connection goes back to the pool on every
// path, including a panic inside Exec.
func exec(ctx context.Context, pool Pool, sql string, args ...any) (int64, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
