package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"crag-outfitters/models"
)

// memStorage is an in-memory DeviceStorage for tests
type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte

	failGet    bool
	failPut    bool
	failDelete bool
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) key(scope, key string) string { return scope + "/" + key }

func (m *memStorage) Get(_ context.Context, scope, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, false, errors.New("storage unavailable")
	}
	blob, ok := m.blobs[m.key(scope, key)]
	return blob, ok, nil
}

func (m *memStorage) Put(_ context.Context, scope, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("storage unavailable")
	}
	m.blobs[m.key(scope, key)] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("storage unavailable")
	}
	delete(m.blobs, m.key(scope, key))
	return nil
}

// memCatalog is an in-memory ProductSource for tests
type memCatalog struct {
	products map[int64]*models.ProductWithOptions
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: map[int64]*models.ProductWithOptions{}}
}

func (c *memCatalog) add(id int64, name string, options ...models.ProductOption) {
	c.products[id] = &models.ProductWithOptions{
		Product: models.Product{
			ID:              id,
			ProductName:     name,
			BrandName:       "Summit Supply",
			OptionType:      "Size",
			SmallImageFile1: fmt.Sprintf("%d_small.jpg", id),
		},
		ProductOptions: options,
	}
}

func (c *memCatalog) GetProduct(_ context.Context, id int64) (*models.ProductWithOptions, error) {
	pw, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return pw, nil
}

// memServerStore is an in-memory ServerCartStore for tests, with
// per-product write failure injection to exercise partial drains
type memServerStore struct {
	mu     sync.Mutex
	nextID int64
	lines  map[int64][]models.PricedLineItem // by user id

	catalog    *memCatalog
	failCreate map[int64]bool // by product id
}

func newMemServerStore(catalog *memCatalog) *memServerStore {
	return &memServerStore{
		nextID:     1,
		lines:      map[int64][]models.PricedLineItem{},
		catalog:    catalog,
		failCreate: map[int64]bool{},
	}
}

func (s *memServerStore) List(_ context.Context, userID int64) ([]models.PricedLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PricedLineItem, len(s.lines[userID]))
	copy(out, s.lines[userID])
	return out, nil
}

func (s *memServerStore) Create(ctx context.Context, userID, productID int64, optionSelection string, quantity int) (*models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreate[productID] {
		return nil, fmt.Errorf("%w: cart store rejected write", ErrUpstreamUnavailable)
	}

	pw, ok := s.catalog.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	var option *models.ProductOption
	for i := range pw.ProductOptions {
		if pw.ProductOptions[i].Option == optionSelection {
			option = &pw.ProductOptions[i]
			break
		}
	}
	if option == nil {
		return nil, fmt.Errorf("%w: product %d has no option %q", ErrNotFound, productID, optionSelection)
	}

	id := s.nextID
	s.nextID++
	s.lines[userID] = append(s.lines[userID], models.PricedLineItem{
		ID:              strconv.FormatInt(id, 10),
		ProductID:       productID,
		OptionSelection: optionSelection,
		Quantity:        quantity,
		UnitPrice:       option.Price,
		AmountInStock:   option.AmountInStock,
		ProductName:     pw.Product.ProductName,
		BrandName:       pw.Product.BrandName,
		ImageRef:        pw.Product.SmallImageFile1,
		OptionType:      pw.Product.OptionType,
	})
	return &models.LineItem{
		ID:              strconv.FormatInt(id, 10),
		ProductID:       productID,
		OptionSelection: optionSelection,
		Quantity:        quantity,
	}, nil
}

func (s *memServerStore) UpdateQuantity(_ context.Context, lineItemID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.FormatInt(lineItemID, 10)
	for userID := range s.lines {
		for i := range s.lines[userID] {
			if s.lines[userID][i].ID == id {
				s.lines[userID][i].Quantity = quantity
				return nil
			}
		}
	}
	return fmt.Errorf("%w: cart item %d", ErrNotFound, lineItemID)
}

func (s *memServerStore) Delete(_ context.Context, lineItemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.FormatInt(lineItemID, 10)
	for userID := range s.lines {
		kept := s.lines[userID][:0]
		for _, line := range s.lines[userID] {
			if line.ID != id {
				kept = append(kept, line)
			}
		}
		s.lines[userID] = kept
	}
	return nil
}
