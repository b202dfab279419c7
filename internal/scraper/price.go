package scraper

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoPrice é retornado quando o texto não tem dígitos
var ErrNoPrice = errors.New("price not found")

var nonPriceChars = regexp.MustCompile(`[^0-9.,]`)

// ParsePrice extrai o valor de um preço exibido, como "€19.99",
// "1.299,00" ou "US $3.50"
func ParsePrice(text string) (decimal.Decimal, error) {
	clean := strings.Trim(nonPriceChars.ReplaceAllString(text, ""), ".,")
	if strings.IndexAny(clean, "0123456789") < 0 {
		return decimal.Zero, ErrNoPrice
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// o último separador é o decimal
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSingle(clean, ",")
	case lastDot >= 0:
		clean = normalizeSingle(clean, ".")
	}

	return decimal.NewFromString(clean)
}

// normalizeSingle trata sep como decimal quando aparece uma vez seguido de um
// ou dois dígitos, senão como separador de milhar
func normalizeSingle(s, sep string) string {
	idx := strings.LastIndex(s, sep)
	decimals := len(s) - idx - 1
	if strings.Count(s, sep) == 1 && decimals >= 1 && decimals <= 2 {
		return strings.Replace(s, sep, ".", 1)
	}
	return strings.ReplaceAll(s, sep, "")
}
