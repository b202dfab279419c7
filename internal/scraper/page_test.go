package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="product-item" data-id="501">
  <img src="https://img.example.com/501.jpg">
  <span class="product-title"> Reloj inteligente </span>
  <span class="product-price">€21.40</span>
  <a class="product-link" href="https://aliexpress.com/item/501">ver</a>
</div>
<div class="product-item" data-id="502">
  <span class="product-title">Sin precio</span>
</div>
<div class="product-item" data-id="503">
  <img src="https://img.example.com/503.jpg">
  <span class="product-title">Soporte móvil</span>
  <span class="product-price">€4.10</span>
  <a class="product-link" href="https://aliexpress.com/item/503">ver</a>
</div>
</body></html>`

func TestParseProducts_SkipsMalformedCards(t *testing.T) {
	products, skipped, err := ParseProducts(searchPage, 10)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "501", products[0].ID)
	assert.Equal(t, "Reloj inteligente", products[0].Name)
	assert.Equal(t, "€21.40", products[0].Price)
	assert.Equal(t, "AliExpress", products[0].Supplier)
	assert.Equal(t, "https://aliexpress.com/item/501", products[0].URL)
	assert.Equal(t, "503", products[1].ID)

	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Equal(t, "missing .product-price", skipped[0].Reason)
}

func TestParseProducts_Max(t *testing.T) {
	products, _, err := ParseProducts(searchPage, 1)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestParseOrders(t *testing.T) {
	page := `<table>
<tr class="order-item" data-id="SO-1">
  <td class="order-date">2024-04-02</td>
  <td class="customer-name">Lucía</td>
  <td class="order-total">€31.00</td>
  <td class="order-status">Pending</td>
</tr>
<tr class="order-item">
  <td class="order-date">2024-04-03</td>
</tr>
</table>`

	orders, skipped, err := ParseOrders(page, 20)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SO-1", orders[0].ExternalID)
	assert.Equal(t, "Lucía", orders[0].Customer)
	assert.Equal(t, "€31.00", orders[0].Total)
	assert.Equal(t, "Pending", orders[0].Status)
	assert.Len(t, skipped, 1)
}
