package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crag-outfitters/models"
)

func testAggregator() (*Aggregator, *memCatalog) {
	catalog := newMemCatalog()
	catalog.add(1, "Granite Chalk Bag",
		models.ProductOption{ID: 1, ProductID: 1, Option: "Default", Price: 1000, AmountInStock: 10},
	)
	catalog.add(2, "Ridgeline Rope",
		models.ProductOption{ID: 2, ProductID: 2, Option: "60M", Price: 15900, AmountInStock: 4},
		models.ProductOption{ID: 3, ProductID: 2, Option: "70M", Price: 18900, AmountInStock: 2},
	)
	return NewAggregator(NewCatalogResolver(catalog)), catalog
}

func TestAggregateEmptyCart(t *testing.T) {
	agg, _ := testAggregator()

	view := agg.Aggregate(context.Background(), nil)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, int64(0), view.SubTotal)
	assert.NotNil(t, view.LineItems)
	assert.Empty(t, view.LineItems)
	assert.False(t, view.Partial)
}

func TestAggregateDerivesTotals(t *testing.T) {
	agg, _ := testAggregator()

	view := agg.Aggregate(context.Background(), []models.LineItem{
		{ID: "a", ProductID: 1, OptionSelection: "Default", Quantity: 2},
	})
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, int64(2000), view.SubTotal)
	require.Len(t, view.LineItems, 1)
	assert.Equal(t, int64(1000), view.LineItems[0].UnitPrice)
}

func TestAggregatePreservesInsertionOrder(t *testing.T) {
	agg, _ := testAggregator()

	items := []models.LineItem{
		{ID: "a", ProductID: 2, OptionSelection: "70M", Quantity: 1},
		{ID: "b", ProductID: 1, OptionSelection: "Default", Quantity: 1},
		{ID: "c", ProductID: 2, OptionSelection: "60M", Quantity: 1},
	}

	// Resolutions run concurrently; order must hold on every run.
	for i := 0; i < 50; i++ {
		view := agg.Aggregate(context.Background(), items)
		require.Len(t, view.LineItems, 3)
		assert.Equal(t, "a", view.LineItems[0].ID)
		assert.Equal(t, "b", view.LineItems[1].ID)
		assert.Equal(t, "c", view.LineItems[2].ID)
	}
}

func TestAggregatePartialOnFailedLine(t *testing.T) {
	agg, _ := testAggregator()

	view := agg.Aggregate(context.Background(), []models.LineItem{
		{ID: "a", ProductID: 1, OptionSelection: "Default", Quantity: 2},
		{ID: "b", ProductID: 99, OptionSelection: "Default", Quantity: 5},
	})

	// The dead line is excluded from the totals, not zero-priced into them.
	assert.True(t, view.Partial)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, int64(2000), view.SubTotal)
	require.Len(t, view.LineItems, 1)
	require.Len(t, view.FailedLines, 1)
	assert.Equal(t, "b", view.FailedLines[0].LineItemID)
	assert.Equal(t, int64(99), view.FailedLines[0].ProductID)
}

func TestAggregateAllLinesFailed(t *testing.T) {
	agg, _ := testAggregator()

	view := agg.Aggregate(context.Background(), []models.LineItem{
		{ID: "a", ProductID: 98, OptionSelection: "Default", Quantity: 1},
		{ID: "b", ProductID: 99, OptionSelection: "Default", Quantity: 1},
	})

	assert.True(t, view.Partial)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, int64(0), view.SubTotal)
	assert.Empty(t, view.LineItems)
	assert.Len(t, view.FailedLines, 2)
}

func TestFoldRecomputesTotals(t *testing.T) {
	view := Fold([]models.PricedLineItem{
		{ID: "1", Quantity: 2, UnitPrice: 1000},
		{ID: "2", Quantity: 1, UnitPrice: 500},
	})
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, int64(2500), view.SubTotal)
}

func TestFoldEmpty(t *testing.T) {
	view := Fold(nil)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, int64(0), view.SubTotal)
	assert.NotNil(t, view.LineItems)
}
