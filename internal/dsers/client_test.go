package dsers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const base = "https://dsers.test"

func newTestClient(t *testing.T, b *fakeBrowser) *Client {
	return NewClient(b, Options{
		BaseURL:       base + "/",
		Username:      "shop@example.com",
		Password:      "secret",
		StepTimeout:   50 * time.Millisecond,
		SearchTimeout: 50 * time.Millisecond,
	}, zaptest.NewLogger(t))
}

func TestLogin_Script(t *testing.T) {
	b := newFakeBrowser()
	c := newTestClient(t, b)

	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, []string{
		"navigate https://dsers.test/login",
		"ready #username",
		"keys #username shop@example.com",
		"keys #password secret",
		"click //button[@type='submit']",
		"ready .dashboard",
	}, b.Actions())
}

func TestLogin_MissingCredentials(t *testing.T) {
	b := newFakeBrowser()
	c := NewClient(b, Options{Username: "only-user"}, nil)

	err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, b.Actions())
}

func TestLogin_StepTimeout(t *testing.T) {
	b := newFakeBrowser()
	b.missing[".dashboard"] = true
	c := newTestClient(t, b)

	err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.ErrorContains(t, err, "login confirmation")
	assert.False(t, c.loggedIn)
}

func TestSearchProducts_LogsInOnce(t *testing.T) {
	b := newFakeBrowser()
	b.pages[base+"/product/search"] = `<div class="product-item" data-id="77">
  <img src="https://img.test/77.jpg"><span class="product-title">Taza térmica</span>
  <span class="product-price">€9.90</span><a class="product-link" href="https://aliexpress.com/item/77"></a>
</div>`
	c := newTestClient(t, b)

	for i := 0; i < 2; i++ {
		products, err := c.SearchProducts(context.Background(), "taza viaje", 10)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Taza térmica", products[0].Name)
	}

	logins := 0
	for _, a := range b.Actions() {
		if a == "navigate https://dsers.test/login" {
			logins++
		}
	}
	assert.Equal(t, 1, logins)
	assert.Contains(t, b.Actions(), "navigate https://dsers.test/product/search?keyword=taza+viaje")
}

func TestSearchProducts_NoResults(t *testing.T) {
	b := newFakeBrowser()
	b.missing[".product-item"] = true
	c := newTestClient(t, b)

	products, err := c.SearchProducts(context.Background(), "nada", 10)
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, products)
}

func TestImportProduct(t *testing.T) {
	b := newFakeBrowser()
	c := newTestClient(t, b)

	require.NoError(t, c.ImportProduct(context.Background(), "1001"))
	actions := b.Actions()
	assert.Equal(t, []string{
		"navigate https://dsers.test/product/detail/1001",
		"visible #import-button",
		"click #import-button",
		"ready .success-message",
	}, actions[len(actions)-4:])
}

func TestProcessOrder_NoConfirmation(t *testing.T) {
	b := newFakeBrowser()
	b.missing[".success-message"] = true
	c := newTestClient(t, b)

	err := c.ProcessOrder(context.Background(), "SO-9")
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Contains(t, b.Actions(), "click #process-button")
}

func TestGetOrders(t *testing.T) {
	b := newFakeBrowser()
	b.pages[base+"/orders"] = `<table><tr class="order-item" data-id="SO-1">
<td class="order-date">2024-04-02</td><td class="customer-name">Lucía</td>
<td class="order-total">€31.00</td><td class="order-status">Pending</td></tr></table>`
	c := newTestClient(t, b)

	orders, err := c.GetOrders(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SO-1", orders[0].ExternalID)
}

func TestClose_ResetsLogin(t *testing.T) {
	b := newFakeBrowser()
	c := newTestClient(t, b)

	require.NoError(t, c.Login(context.Background()))
	require.NoError(t, c.Close())
	assert.False(t, c.loggedIn)
	assert.Equal(t, 1, b.closed)
}
