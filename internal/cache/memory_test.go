package cache

import (
	"context"
	"testing"
	"time"

	"dropship-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_PutGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, []models.Product{
		{ID: "1001", Name: "Producto gafas Premium", Price: "€19.99", Platform: "aliexpress"},
		{ID: "1002", Name: "gafas Profesional", Price: "€24.99", Platform: "aliexpress"},
	}))

	p, err := c.Get(ctx, "aliexpress", "1002")
	require.NoError(t, err)
	assert.Equal(t, "gafas Profesional", p.Name)

	_, err = c.Get(ctx, "aliexpress", "9999")
	assert.ErrorIs(t, err, ErrNotCached)

	_, err = c.Get(ctx, "dsers", "1002")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(10 * time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, []models.Product{{ID: "1", Platform: "dsers"}}))

	now = now.Add(11 * time.Minute)
	_, err := c.Get(ctx, "dsers", "1")
	assert.ErrorIs(t, err, ErrNotCached)

	// o próximo Put remove as entradas expiradas
	require.NoError(t, c.Put(ctx, []models.Product{{ID: "2", Platform: "dsers"}}))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_NewerSearchOverwrites(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, []models.Product{{ID: "1001", Name: "Producto a Premium", Platform: "dsers"}}))
	require.NoError(t, c.Put(ctx, []models.Product{{ID: "1001", Name: "Producto b Premium", Platform: "dsers"}}))

	p, err := c.Get(ctx, "dsers", "1001")
	require.NoError(t, err)
	assert.Equal(t, "Producto b Premium", p.Name)
}

func TestMemoryCache_SameIDOnTwoPlatforms(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, []models.Product{{ID: "1001", Name: "Auriculares Bluetooth", Platform: "dsers"}}))
	require.NoError(t, c.Put(ctx, []models.Product{{ID: "1001", Name: "Producto gafas Premium", Platform: "aliexpress"}}))

	p, err := c.Get(ctx, "dsers", "1001")
	require.NoError(t, err)
	assert.Equal(t, "Auriculares Bluetooth", p.Name)

	p, err = c.Get(ctx, "aliexpress", "1001")
	require.NoError(t, err)
	assert.Equal(t, "Producto gafas Premium", p.Name)
	assert.Equal(t, 2, c.Len())
}
