package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/variants"
)

func TestMemoryDraftRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMemoryDraftRepository(time.Hour)
	repo.now = func() time.Time { return now }

	_, err := repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound)

	d := orderbuilder.NewDraft("d1", now).WithRecipient(orderbuilder.Recipient{Name: "Ana"})
	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	now = now.Add(2 * time.Hour)
	_, err = repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound, "expired")

	require.NoError(t, repo.Save(ctx, d))
	require.NoError(t, repo.Delete(ctx, "d1"))
	_, err = repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDraftRepository_ExpiredDraftsAreRemoved(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMemoryDraftRepository(time.Hour)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, orderbuilder.NewDraft("old-1", now)))
	require.NoError(t, repo.Save(ctx, orderbuilder.NewDraft("old-2", now)))

	now = now.Add(2 * time.Hour)
	_, err := repo.Get(ctx, "old-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, repo.drafts, "old-1")

	require.NoError(t, repo.Save(ctx, orderbuilder.NewDraft("fresh", now)))
	assert.NotContains(t, repo.drafts, "old-2")
	assert.Len(t, repo.drafts, 1)

	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestCeilings(t *testing.T) {
	groups := []variants.AttributeGroup{
		{Name: "Color", Values: []string{"Rojo", "Negro"}},
		{Name: "Talla", Values: []string{"S", "M"}},
		{Name: "Tela", Values: []string{"Algodón", "Polar"}},
	}
	m := variants.NewMatrix(groups, nil)
	for _, c := range m.Combinations {
		qty := 1
		if c.Assignment["Color"] == "Negro" && c.Assignment["Talla"] == "M" {
			qty = 3
		}
		var err error
		m, err = m.SetStock(c.Assignment, qty)
		require.NoError(t, err)
	}

	got := ceilings(m.Groups, m.Combinations)

	assert.Equal(t, []orderbuilder.ColorVariant{
		{Color: "Rojo", Sizes: []orderbuilder.SizeStock{{Size: "S", Stock: 2}, {Size: "M", Stock: 2}}},
		{Color: "Negro", Sizes: []orderbuilder.SizeStock{{Size: "S", Stock: 2}, {Size: "M", Stock: 6}}},
	}, got)

	assert.Nil(t, ceilings([]variants.AttributeGroup{{Name: "Tela"}}, m.Combinations))
}

func TestBuildSalesReport(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	r := buildSalesReport(from, to, []models.SalesDay{
		{Day: "2026-01-02", Orders: 2, Units: 5, Revenue: decimal.RequireFromString("120000")},
		{Day: "2026-01-05", Orders: 1, Units: 1, Revenue: decimal.RequireFromString("45000.50")},
	})

	assert.Equal(t, "2026-01-01", r.From)
	assert.Equal(t, "2026-01-31", r.To)
	assert.Equal(t, 3, r.TotalOrders)
	assert.Equal(t, 6, r.TotalUnits)
	assert.Equal(t, "165000.5", r.TotalRevenue.String())

	empty := buildSalesReport(from, to, nil)
	assert.NotNil(t, empty.Days)
	assert.True(t, empty.TotalRevenue.IsZero())
}
