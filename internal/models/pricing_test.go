package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMargin(t *testing.T) {
	for in, want := range map[string]string{"30": "30", " 25% ": "25", "12,5": "12.5", "0": "0"} {
		m, err := ParseMargin(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m.String(), in)
	}

	_, err := ParseMargin("mucho")
	assert.Error(t, err)
	_, err = ParseMargin("-5")
	assert.Error(t, err)

	assert.True(t, MarginOrDefault("").Equal(DefaultPriceMargin))
}

func TestSalePrice(t *testing.T) {
	cost := decimal.RequireFromString("12.99")
	assert.Equal(t, "16.89", SalePrice(cost, decimal.NewFromInt(30)).StringFixed(2))
	assert.Equal(t, "12.99", SalePrice(cost, decimal.Zero).StringFixed(2))
}

func TestScheduledTask_Clone(t *testing.T) {
	orig := &ScheduledTask{ID: "a", Params: map[string]any{"margin": "20"}}
	c := orig.Clone()
	c.Params["margin"] = "40"
	assert.Equal(t, "20", orig.Params["margin"])
}
