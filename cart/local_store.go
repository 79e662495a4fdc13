package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"crag-outfitters/models"
)

// storageKey is the single well-known key the anonymous cart lives under.
// The store itself is scoped to one visitor, so the key never varies.
const storageKey = "guestCart"

// DeviceStorage is the durable string-keyed blob store a visitor's cart
// lives in while anonymous. Absence of the key is a valid, non-error
// state meaning "no cart yet".
type DeviceStorage interface {
	Get(ctx context.Context, scope, key string) ([]byte, bool, error)
	Put(ctx context.Context, scope, key string, value []byte) error
	Delete(ctx context.Context, scope, key string) error
}

// LocalStore holds the anonymous cart for one visitor as an ordered list
// of line items. Every mutation reads the full list, applies the change
// and writes the full list back; the store is single-device and
// single-caller so no finer-grained update is needed.
type LocalStore struct {
	storage DeviceStorage
	scope   string // visitor session id
}

// NewLocalStore creates a LocalStore bound to one visitor session
func NewLocalStore(storage DeviceStorage, scope string) *LocalStore {
	return &LocalStore{storage: storage, scope: scope}
}

// Read returns the stored line items in insertion order. Missing storage
// is treated as an empty list, never as an error.
func (s *LocalStore) Read(ctx context.Context) ([]models.LineItem, error) {
	payload, ok, err := s.storage.Get(ctx, s.scope, storageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: reading guest cart: %v", ErrUpstreamUnavailable, err)
	}
	if !ok {
		return []models.LineItem{}, nil
	}

	var items []models.LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		// A corrupt blob is unrecoverable; start the visitor over rather
		// than failing every cart read for the rest of the session.
		log.Printf("⚠️ LocalStore: discarding corrupt guest cart for scope=%s: %v", s.scope, err)
		if clearErr := s.storage.Delete(ctx, s.scope, storageKey); clearErr != nil {
			return nil, fmt.Errorf("%w: clearing corrupt guest cart: %v", ErrUpstreamUnavailable, clearErr)
		}
		return []models.LineItem{}, nil
	}
	return items, nil
}

// Write replaces the stored list
func (s *LocalStore) Write(ctx context.Context, items []models.LineItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := s.storage.Put(ctx, s.scope, storageKey, payload); err != nil {
		return fmt.Errorf("%w: writing guest cart: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// Clear removes the stored list entirely
func (s *LocalStore) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.scope, storageKey); err != nil {
		return fmt.Errorf("%w: clearing guest cart: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// Add appends a new line item and returns it. An existing line with the
// same (productId, optionSelection) is left untouched - duplicates
// coexist as separate "added at different times" entries.
func (s *LocalStore) Add(ctx context.Context, productID int64, optionSelection string, quantity int) (*models.LineItem, error) {
	items, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}

	item := models.LineItem{
		ID:              uuid.NewString(),
		ProductID:       productID,
		OptionSelection: optionSelection,
		Quantity:        quantity,
	}
	items = append(items, item)

	if err := s.Write(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity overwrites the quantity of the line item with the given
// id. Returns ErrNotFound if no line item matches.
func (s *LocalStore) UpdateQuantity(ctx context.Context, lineItemID string, quantity int) error {
	items, err := s.Read(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == lineItemID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: line item %s", ErrNotFound, lineItemID)
	}

	return s.Write(ctx, items)
}

// Remove deletes the line item with the given id. Removing an absent id
// is a no-op, not an error.
func (s *LocalStore) Remove(ctx context.Context, lineItemID string) error {
	items, err := s.Read(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != lineItemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	return s.Write(ctx, kept)
}
