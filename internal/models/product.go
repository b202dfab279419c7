package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product é um anúncio do fornecedor como retornado pela busca no catálogo
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Supplier string `json:"supplier"`
	Price    string `json:"price"` // display string, e.g. "€19.99"
	Image    string `json:"image"`
	URL      string `json:"url"`
	Platform string `json:"platform,omitempty"`
}

// StoreProduct é um produto importado para a loja
type StoreProduct struct {
	ID         int64
	ExternalID string
	Name       string
	Supplier   string
	Platform   string
	ImageURL   string
	SourceURL  string
	Cost       decimal.Decimal // preço do fornecedor
	Price      decimal.Decimal // preço de venda
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status de produto
const (
	ProductStatusImported = "imported"
	ProductStatusActive   = "active"
)
