package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"€19.99", "19.99"},
		{"US $3.50", "3.5"},
		{"1.299,00 €", "1299"},
		{"1,299.00", "1299"},
		{"R$ 1.299", "1299"},
		{"12,5", "12.5"},
		{"8", "8"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParsePrice_NoDigits(t *testing.T) {
	for _, in := range []string{"", "gratis", "€.,"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrNoPrice, in)
	}
}
