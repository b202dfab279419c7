package models

import "time"

// Order é um pedido de cliente espelhado da plataforma do fornecedor
type Order struct {
	ID         int64
	ExternalID string
	OrderedAt  string // data como exibida pela plataforma
	Customer   string
	Total      string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status de pedido usados localmente
const (
	OrderStatusPending   = "pending"
	OrderStatusProcessed = "processed"
	OrderStatusFailed    = "failed"
)
