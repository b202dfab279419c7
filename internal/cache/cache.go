package cache

import (
	"context"
	"errors"

	"dropship-dashboard/internal/models"
)

// ErrNotCached é retornado quando o produto não está no cache ou expirou
var ErrNotCached = errors.New("product not in search cache")

// SearchCache guarda os resultados de busca para que possam ser importados depois
type SearchCache interface {
	Put(ctx context.Context, products []models.Product) error
	Get(ctx context.Context, platform, id string) (models.Product, error)
}

// Key identifica um resultado pela plataforma e pelo id do fornecedor
func Key(platform, id string) string {
	return platform + ":" + id
}
