package cart

import (
	"context"
	"fmt"

	"crag-outfitters/models"
)

// ProductSource is the slice of the catalog the resolver needs: one
// product plus its full option list in one logical call.
type ProductSource interface {
	GetProduct(ctx context.Context, id int64) (*models.ProductWithOptions, error)
}

// SnapshotResolver resolves a (product, option) pair to the catalog's
// current price, stock and display metadata.
type SnapshotResolver interface {
	Resolve(ctx context.Context, productID int64, optionSelection string) (*models.ProductSnapshot, error)
}

// CatalogResolver resolves snapshots against the product catalog. The
// guest-cart rehydration path only holds a productId and an option label,
// so the full product is fetched and the option selected by string
// equality against the label.
type CatalogResolver struct {
	products ProductSource
}

// NewCatalogResolver creates a CatalogResolver
func NewCatalogResolver(products ProductSource) *CatalogResolver {
	return &CatalogResolver{products: products}
}

// Ensure CatalogResolver implements SnapshotResolver
var _ SnapshotResolver = (*CatalogResolver)(nil)

// Resolve fetches the product and picks the option matching
// optionSelection. A missing product or a label that matches none of the
// product's options is ErrNotFound for this line only.
func (r *CatalogResolver) Resolve(ctx context.Context, productID int64, optionSelection string) (*models.ProductSnapshot, error) {
	pw, err := r.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var found *models.ProductOption
	for i := range pw.ProductOptions {
		if pw.ProductOptions[i].Option == optionSelection {
			found = &pw.ProductOptions[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: product %d has no option %q", ErrNotFound, productID, optionSelection)
	}

	return &models.ProductSnapshot{
		ProductID:     pw.Product.ID,
		ProductName:   pw.Product.ProductName,
		BrandName:     pw.Product.BrandName,
		OptionType:    pw.Product.OptionType,
		ImageRef:      pw.Product.SmallImageFile1,
		Option:        found.Option,
		UnitPrice:     found.Price,
		AmountInStock: found.AmountInStock,
	}, nil
}
