package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByEmail(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	conn := &recordingConn{row: scanFunc(func(dest ...any) error {
		*dest[0].(*string) = "u1"
		*dest[1].(*string) = "User"
		*dest[2].(*string) = "user@nextmail.com"
		*dest[3].(*string) = "$2a$10$hash"
		*dest[4].(*time.Time) = created
		return nil
	})}
	repo := NewUserRepository(&recordingPool{conn: conn})

	u, err := repo.FindByEmail(context.Background(), "user@nextmail.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "$2a$10$hash", u.Password)
	assert.Equal(t, created, u.CreatedAt)
	assert.Equal(t, []any{"user@nextmail.com"}, conn.calls[0].args)
	assert.Equal(t, 1, conn.released)
}

func TestFindByEmailUnknown(t *testing.T) {
	conn := &recordingConn{row: scanFunc(func(...any) error { return pgx.ErrNoRows })}
	repo := NewUserRepository(&recordingPool{conn: conn})

	u, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1, conn.released)
}

func TestFindByEmailError(t *testing.T) {
	conn := &recordingConn{row: scanFunc(func(...any) error { return errBoom })}
	repo := NewUserRepository(&recordingPool{conn: conn})

	_, err := repo.FindByEmail(context.Background(), "user@nextmail.com")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, conn.released)
}

func TestCreateCustomer(t *testing.T) {
	conn := &recordingConn{row: scanFunc(func(dest ...any) error {
		*dest[0].(*string) = "cust-1"
		return nil
	})}
	repo := NewCustomerRepository(&recordingPool{conn: conn})

	c, err := repo.Create(context.Background(), "Evil Rabbit", "evil@rabbit.com", "")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", c.ID)
	assert.Equal(t, []any{"Evil Rabbit", "evil@rabbit.com", ""}, conn.calls[0].args)
	assert.Equal(t, 1, conn.released)
}
