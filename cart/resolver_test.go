package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crag-outfitters/models"
)

func TestCatalogResolverResolvesOption(t *testing.T) {
	catalog := newMemCatalog()
	catalog.add(14, "Ridgeline Rope",
		models.ProductOption{ID: 1, ProductID: 14, Option: "60M", Price: 15900, AmountInStock: 4},
		models.ProductOption{ID: 2, ProductID: 14, Option: "70M", Price: 18900, AmountInStock: 2},
	)
	resolver := NewCatalogResolver(catalog)

	snap, err := resolver.Resolve(context.Background(), 14, "70M")
	require.NoError(t, err)
	assert.Equal(t, int64(18900), snap.UnitPrice)
	assert.Equal(t, 2, snap.AmountInStock)
	assert.Equal(t, "Ridgeline Rope", snap.ProductName)
	assert.Equal(t, "14_small.jpg", snap.ImageRef)
}

func TestCatalogResolverUnknownProduct(t *testing.T) {
	resolver := NewCatalogResolver(newMemCatalog())

	_, err := resolver.Resolve(context.Background(), 99, "70M")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogResolverUnknownOption(t *testing.T) {
	catalog := newMemCatalog()
	catalog.add(14, "Ridgeline Rope",
		models.ProductOption{ID: 1, ProductID: 14, Option: "60M", Price: 15900, AmountInStock: 4},
	)
	resolver := NewCatalogResolver(catalog)

	_, err := resolver.Resolve(context.Background(), 14, "80M")
	assert.True(t, errors.Is(err, ErrNotFound))
}
