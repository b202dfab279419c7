package dsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestManager_CatalogFallsBackWithoutCredentials(t *testing.T) {
	created := 0
	m := NewManager(func() Browser { created++; return newFakeBrowser() }, Options{}, zaptest.NewLogger(t))

	products, err := m.Catalog().Search(context.Background(), "yoga", 3)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "Auriculares Bluetooth 5.0 - Relacionado con: yoga", products[0].Name)
	assert.Equal(t, 0, created)
	assert.Equal(t, Platform, m.Catalog().Name())

	_, err = m.Client()
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestManager_SetCredentialsClosesClient(t *testing.T) {
	var browsers []*fakeBrowser
	m := NewManager(func() Browser {
		b := newFakeBrowser()
		browsers = append(browsers, b)
		return b
	}, Options{Username: "a", Password: "b"}, zaptest.NewLogger(t))

	first, err := m.Client()
	require.NoError(t, err)
	same, err := m.Client()
	require.NoError(t, err)
	assert.Same(t, first, same)

	// credenciais iguais mantêm o cliente
	m.SetCredentials("a", "b")
	require.Len(t, browsers, 1)
	assert.Equal(t, 0, browsers[0].closed)

	m.SetCredentials("a", "c")
	assert.Equal(t, 1, browsers[0].closed)

	second, err := m.Client()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, browsers, 2)

	m.SetCredentials("", "")
	assert.False(t, m.HasCredentials())
	assert.Equal(t, 1, browsers[1].closed)
	assert.NoError(t, m.Close())
}

func TestManager_ImportProductWithoutCredentials(t *testing.T) {
	m := NewManager(func() Browser { return newFakeBrowser() }, Options{}, zaptest.NewLogger(t))

	err := m.ImportProduct(context.Background(), "1001")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
