package scraper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug reduz o texto a letras ASCII minúsculas, dígitos e hífens.
// Acentos são removidos: "Lámpara LED" vira "lampara-led".
func Slug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		plain = strings.ToLower(text)
	}

	var b strings.Builder
	dash := false
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// listingID dá a um resultado simulado um id próprio da palavra-chave, para
// que buscas diferentes não gerem produtos com o mesmo id
func listingID(keyword, number string) string {
	if slug := Slug(keyword); slug != "" {
		return slug + "-" + number
	}
	return number
}
