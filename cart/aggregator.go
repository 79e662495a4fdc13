package cart

import (
	"context"
	"log"
	"sync"

	"crag-outfitters/models"
)

// Aggregator resolves a list of line items to current prices and folds
// them into a CartView. Line items resolve independently and
// concurrently; a failure on one line never cancels the others.
type Aggregator struct {
	resolver SnapshotResolver
}

// NewAggregator creates an Aggregator backed by the given resolver
func NewAggregator(resolver SnapshotResolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Aggregate resolves every line item and accumulates itemCount and
// subTotal over the lines that resolved. Output order matches input
// (insertion) order regardless of which resolution finished first.
// Failed lines are excluded from the totals and reported on the view's
// FailedLines with Partial set; they never abort the whole read.
//
// An empty input yields {itemCount: 0, subTotal: 0, lineItems: []},
// which is distinct from the unloaded sentinel.
func (a *Aggregator) Aggregate(ctx context.Context, items []models.LineItem) models.CartView {
	view := models.CartView{LineItems: []models.PricedLineItem{}}
	if len(items) == 0 {
		return view
	}

	// Fan out one resolution per line with indexed result slots, then
	// join on an all-complete barrier before folding. No fail-fast.
	priced := make([]*models.PricedLineItem, len(items))
	failures := make([]error, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int, item models.LineItem) {
			defer wg.Done()
			snap, err := a.resolver.Resolve(ctx, item.ProductID, item.OptionSelection)
			if err != nil {
				failures[i] = err
				return
			}
			priced[i] = &models.PricedLineItem{
				ID:              item.ID,
				ProductID:       item.ProductID,
				OptionSelection: item.OptionSelection,
				Quantity:        item.Quantity,
				UnitPrice:       snap.UnitPrice,
				AmountInStock:   snap.AmountInStock,
				ProductName:     snap.ProductName,
				BrandName:       snap.BrandName,
				ImageRef:        snap.ImageRef,
				OptionType:      snap.OptionType,
			}
		}(i, items[i])
	}
	wg.Wait()

	for i := range items {
		if failures[i] != nil {
			log.Printf("⚠️ Aggregate: line %s (product %d) failed to resolve: %v", items[i].ID, items[i].ProductID, failures[i])
			view.Partial = true
			view.FailedLines = append(view.FailedLines, models.FailedLine{
				LineItemID: items[i].ID,
				ProductID:  items[i].ProductID,
				Reason:     failures[i].Error(),
			})
			continue
		}
		line := *priced[i]
		view.LineItems = append(view.LineItems, line)
		view.ItemCount += line.Quantity
		view.SubTotal += int64(line.Quantity) * line.UnitPrice
	}

	return view
}

// Fold recomputes itemCount and subTotal from already-priced lines. The
// authoritative store returns priced rows from its own join; totals are
// still derived locally so they can never drift from the line list.
func Fold(lines []models.PricedLineItem) models.CartView {
	view := models.CartView{LineItems: lines}
	if view.LineItems == nil {
		view.LineItems = []models.PricedLineItem{}
	}
	for _, line := range view.LineItems {
		view.ItemCount += line.Quantity
		view.SubTotal += int64(line.Quantity) * line.UnitPrice
	}
	return view
}
