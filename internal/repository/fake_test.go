package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	sql  string
	args []any
}

// recordingConn remembers every statement and how often it was released.
type recordingConn struct {
	calls    []call
	released int

	tag      pgconn.CommandTag
	execErr  error
	row      pgx.Row
	rows     pgx.Rows
	queryErr error
	panicMsg string
}

func (c *recordingConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.calls = append(c.calls, call{sql: sql, args: args})
	if c.panicMsg != "" {
		panic(c.panicMsg)
	}
	return c.tag, c.execErr
}

func (c *recordingConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.calls = append(c.calls, call{sql: sql, args: args})
	return c.rows, c.queryErr
}

func (c *recordingConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	c.calls = append(c.calls, call{sql: sql, args: args})
	return c.row
}

func (c *recordingConn) Release() {
	c.released++
}

type recordingPool struct {
	conn       *recordingConn
	acquired   int
	acquireErr error
}

func (p *recordingPool) Acquire(context.Context) (Conn, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conn, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

var errBoom = errors.New("boom")
