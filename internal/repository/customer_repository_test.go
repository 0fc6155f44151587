package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_All(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db.DB)
	ctx := context.Background()

	seedCustomer(t, db, "cust-1", "Lee Robinson", "lee@robinson.com")
	seedCustomer(t, db, "cust-2", "Amy Burns", "amy@burns.com")
	seedCustomer(t, db, "cust-3", "Balazs Orban", "balazs@orban.com")

	fields, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "Amy Burns", fields[0].Name)
	assert.Equal(t, "Balazs Orban", fields[1].Name)
	assert.Equal(t, "Lee Robinson", fields[2].Name)
}

func TestCustomerRepository_ListFiltered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db.DB)
	ctx := context.Background()

	seedCustomer(t, db, "cust-1", "Amy Burns", "amy@burns.com")
	seedCustomer(t, db, "cust-2", "Lee Robinson", "lee@robinson.com")
	seedInvoice(t, db, "inv-1", "cust-1", 1000, "paid", "2026-01-01")
	seedInvoice(t, db, "inv-2", "cust-1", 250, "pending", "2026-01-02")
	seedInvoice(t, db, "inv-3", "cust-1", 750, "pending", "2026-01-03")

	t.Run("aggregates per customer", func(t *testing.T) {
		rows, err := repo.ListFiltered(ctx, "amy")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(3), rows[0].TotalInvoices)
		assert.Equal(t, int64(1000), rows[0].TotalPaid)
		assert.Equal(t, int64(1000), rows[0].TotalPending)
	})

	t.Run("customer without invoices has zero totals", func(t *testing.T) {
		rows, err := repo.ListFiltered(ctx, "robinson")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(0), rows[0].TotalInvoices)
		assert.Equal(t, int64(0), rows[0].TotalPaid)
		assert.Equal(t, int64(0), rows[0].TotalPending)
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		rows, err := repo.ListFiltered(ctx, "LEE@")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty query lists all, name ascending", func(t *testing.T) {
		rows, err := repo.ListFiltered(ctx, "")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Amy Burns", rows[0].Name)
		assert.Equal(t, "Lee Robinson", rows[1].Name)
	})
}

func TestCustomerRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db.DB)
	ctx := context.Background()

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = repo.Create(ctx, &model.Customer{Name: "Amy Burns", Email: "amy@burns.com"})
	require.NoError(t, err)

	total, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
