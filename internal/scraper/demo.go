package scraper

import (
	"context"
	"strings"

	"dropship-dashboard/internal/models"
)

const placeholderImage = "https://via.placeholder.com/300"

// DemoCatalog retorna resultados prontos montados a partir da palavra-chave
type DemoCatalog struct {
	name string
}

// NewDemoCatalog cria um catálogo de demonstração registrado como name
func NewDemoCatalog(name string) *DemoCatalog {
	return &DemoCatalog{name: name}
}

func (d *DemoCatalog) Name() string {
	return d.name
}

// Search retorna três anúncios para uma palavra-chave não vazia
func (d *DemoCatalog) Search(_ context.Context, keyword string, max int) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	products := []models.Product{
		{ID: listingID(keyword, "1001"), Name: "Producto " + keyword + " Premium", Price: "€19.99"},
		{ID: listingID(keyword, "1002"), Name: keyword + " Profesional", Price: "€24.99"},
		{ID: listingID(keyword, "1003"), Name: keyword + " Económico", Price: "€14.99"},
	}
	for i := range products {
		products[i].Supplier = "AliExpress"
		products[i].Image = placeholderImage
		products[i].URL = "#"
	}
	return limit(products, max), nil
}

func limit(products []models.Product, max int) []models.Product {
	if max > 0 && len(products) > max {
		return products[:max]
	}
	return products
}
