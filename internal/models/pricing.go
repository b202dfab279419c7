package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPriceMargin é aplicada quando nenhuma margem foi configurada
var DefaultPriceMargin = decimal.NewFromInt(30)

var hundred = decimal.NewFromInt(100)

// ParseMargin lê uma porcentagem como "30", "30%" ou "12,5"
func ParseMargin(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.Replace(s, ",", ".", 1)
	m, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid margin %q", s)
	}
	if m.IsNegative() {
		return decimal.Zero, fmt.Errorf("margin must not be negative")
	}
	return m, nil
}

// MarginOrDefault interpreta s, caindo para DefaultPriceMargin
func MarginOrDefault(s string) decimal.Decimal {
	if m, err := ParseMargin(s); err == nil {
		return m
	}
	return DefaultPriceMargin
}

// SalePrice soma uma margem percentual ao custo, arredondando em centavos
func SalePrice(cost, marginPercent decimal.Decimal) decimal.Decimal {
	return cost.Mul(hundred.Add(marginPercent)).Div(hundred).Round(2)
}
