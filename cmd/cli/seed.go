package main

import (
	"context"
	"fmt"

	"dropship-dashboard/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// seedStore é onde o comando seed grava
type seedStore interface {
	UpsertProduct(ctx context.Context, p *models.StoreProduct) (int64, error)
	UpsertOrder(ctx context.Context, o *models.Order) (int64, error)
}

var seedPlatforms = []string{"dsers", "aliexpress"}

var seedOrderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusPending,
	models.OrderStatusProcessed,
}

// seedProducts grava n produtos falsos com preço calculado pela margem
func seedProducts(ctx context.Context, store seedStore, f *gofakeit.Faker, n int, margin decimal.Decimal) (int, error) {
	for i := 0; i < n; i++ {
		cost := decimal.NewFromFloat(f.Price(3, 60)).Round(2)
		p := &models.StoreProduct{
			ExternalID: "SEED-" + f.UUID(),
			Name:       f.ProductName(),
			Supplier:   f.Company(),
			Platform:   seedPlatforms[f.Number(0, len(seedPlatforms)-1)],
			ImageURL:   f.URL(),
			SourceURL:  f.URL(),
			Cost:       cost,
			Price:      models.SalePrice(cost, margin),
			Status:     models.ProductStatusImported,
		}
		if _, err := store.UpsertProduct(ctx, p); err != nil {
			return i, fmt.Errorf("product %d: %w", i+1, err)
		}
	}
	return n, nil
}

// seedOrders grava n pedidos falsos, a maioria pendente
func seedOrders(ctx context.Context, store seedStore, f *gofakeit.Faker, n int) (int, error) {
	for i := 0; i < n; i++ {
		o := &models.Order{
			ExternalID: fmt.Sprintf("ORD-%s", f.Numerify("########")),
			OrderedAt:  f.PastDate().Format("2006-01-02"),
			Customer:   f.Name(),
			Total:      fmt.Sprintf("€%.2f", f.Price(10, 200)),
			Status:     seedOrderStatuses[f.Number(0, len(seedOrderStatuses)-1)],
		}
		if _, err := store.UpsertOrder(ctx, o); err != nil {
			return i, fmt.Errorf("order %d: %w", i+1, err)
		}
	}
	return n, nil
}
