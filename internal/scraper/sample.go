package scraper

import (
	"context"

	"dropship-dashboard/internal/models"
)

// SampleCatalog serve uma lista fixa do fornecedor quando não há conta configurada
type SampleCatalog struct {
	name string
}

// NewSampleCatalog cria um catálogo de amostra registrado como name
func NewSampleCatalog(name string) *SampleCatalog {
	return &SampleCatalog{name: name}
}

func (s *SampleCatalog) Name() string {
	return s.name
}

// Search retorna os cinco produtos de amostra, marcados com a palavra-chave
func (s *SampleCatalog) Search(_ context.Context, keyword string, max int) ([]models.Product, error) {
	products := []models.Product{
		sample(keyword, "1001", "Auriculares Bluetooth 5.0 - Relacionado con: "+keyword, "€12.99", "headphones"),
		sample(keyword, "1002", "Cargador USB-C rápido - Relacionado con: "+keyword, "€8.50", "charger"),
		sample(keyword, "1003", "Funda de teléfono "+keyword+" - Impermeable", "€5.99", "phonecase"),
		sample(keyword, "1004", "Lámpara LED inteligente - Búsqueda: "+keyword, "€15.75", "smartlamp"),
		sample(keyword, "1005", "Organizador de cables - Relacionado con: "+keyword, "€3.99", "cableorganizer"),
	}
	return limit(products, max), nil
}

func sample(keyword, number, name, price, image string) models.Product {
	return models.Product{
		ID:       listingID(keyword, number),
		Name:     name,
		Supplier: "AliExpress",
		Price:    price,
		Image:    "https://example.com/images/" + image + ".jpg",
		URL:      "https://aliexpress.com/item/" + number,
	}
}
