package main

import (
	"context"
	"path/filepath"
	"testing"

	"dropship-dashboard/internal/database"
	"dropship-dashboard/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSeed(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "seed.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	f := gofakeit.New(42)

	n, err := seedProducts(ctx, db, f, 5, models.DefaultPriceMargin)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	products, err := db.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)
	for _, p := range products {
		assert.True(t, p.Cost.IsPositive())
		assert.True(t, p.Price.Equal(models.SalePrice(p.Cost, models.DefaultPriceMargin)), p.Name)
		assert.Contains(t, seedPlatforms, p.Platform)
	}

	n, err = seedOrders(ctx, db, f, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	counts, err := db.CountOrdersByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, counts[models.OrderStatusPending]+counts[models.OrderStatusProcessed])
}
