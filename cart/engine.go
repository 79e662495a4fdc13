package cart

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"crag-outfitters/models"
)

// Tier names which cart store a session currently reads and writes.
type Tier int

const (
	// TierAnonymous: all operations target the visitor's local store.
	TierAnonymous Tier = iota
	// TierAuthenticating: transient, held only while the local cart is
	// drained into the server store at login.
	TierAuthenticating
	// TierAuthenticated: all operations target the server store.
	TierAuthenticated
)

func (t Tier) String() string {
	switch t {
	case TierAnonymous:
		return "anonymous"
	case TierAuthenticating:
		return "authenticating"
	case TierAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ServerCartStore is the authoritative, per-user cart persistence. List
// returns rows already joined with current price and stock, since
// server-side data is priced at the query.
type ServerCartStore interface {
	List(ctx context.Context, userID int64) ([]models.PricedLineItem, error)
	Create(ctx context.Context, userID, productID int64, optionSelection string, quantity int) (*models.LineItem, error)
	UpdateQuantity(ctx context.Context, lineItemID int64, quantity int) error
	Delete(ctx context.Context, lineItemID int64) error
}

// Session is the reconciliation engine for one visitor: a state machine
// over the two cart tiers with a single dispatch point, so the local and
// server paths can never drift behaviorally. Created at session start,
// torn down at session end; there are no package-level carts.
type Session struct {
	mu sync.Mutex

	id     string
	tier   Tier
	userID int64

	local  *LocalStore
	server ServerCartStore
	agg    *Aggregator

	view    models.CartView
	loadErr error
}

// NewSession creates a session in the Anonymous state with an unloaded
// cart view.
func NewSession(id string, local *LocalStore, server ServerCartStore, agg *Aggregator) *Session {
	return &Session{
		id:     id,
		tier:   TierAnonymous,
		local:  local,
		server: server,
		agg:    agg,
		view:   models.NewUnloadedCartView(),
	}
}

// Tier returns the session's current state
func (s *Session) Tier() Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

// View returns the last loaded cart view. Before any load it carries the
// unloaded sentinel itemCount of -1.
func (s *Session) View() models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// LoadError reports whether the last load failed. A failed load is a
// distinct state from an empty cart.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Load fetches and aggregates the active tier's cart. The held view's
// itemCount is forced back to the unloaded sentinel before the fetch
// begins, so a slow fetch can never leave a stale count looking current.
func (s *Session) Load(ctx context.Context) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.ItemCount = models.UnloadedItemCount
	s.loadErr = nil

	view, err := s.loadLocked(ctx)
	if err != nil {
		s.loadErr = err
		return models.CartView{}, err
	}
	s.view = view
	return view, nil
}

func (s *Session) loadLocked(ctx context.Context) (models.CartView, error) {
	switch s.tier {
	case TierAuthenticated:
		lines, err := s.server.List(ctx, s.userID)
		if err != nil {
			return models.CartView{}, fmt.Errorf("%w: listing server cart for user %d: %v", ErrUpstreamUnavailable, s.userID, err)
		}
		// Relay the store's priced rows but recompute the totals locally:
		// itemCount and subTotal are derived values, whatever the store
		// reports alongside them.
		return Fold(lines), nil
	default:
		items, err := s.local.Read(ctx)
		if err != nil {
			return models.CartView{}, err
		}
		return s.agg.Aggregate(ctx, items), nil
	}
}

// Authenticate handles the one-shot "authenticated" signal from the auth
// collaborator. It drains the local cart into the server store one write
// per item, clears the local copy, and moves the session to
// Authenticated.
//
// The drain is non-transactional: items migrated before a mid-drain
// failure stay migrated, and only the items whose own write failed are
// written back to the local store. Callers may re-trigger the migration;
// a duplicate server line is acceptable since duplicate
// (product, option) lines are allowed by the data model.
func (s *Session) Authenticate(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tier == TierAuthenticated && s.userID != userID {
		return fmt.Errorf("%w: session already authenticated as user %d", ErrInvalidArgument, s.userID)
	}

	s.tier = TierAuthenticating
	s.userID = userID

	items, err := s.local.Read(ctx)
	if err != nil {
		// Could not even read the local cart; the session is still
		// authenticated, the local items stay put for a later re-trigger.
		s.tier = TierAuthenticated
		return err
	}

	var unmigrated []models.LineItem
	for _, item := range items {
		if _, err := s.server.Create(ctx, userID, item.ProductID, item.OptionSelection, item.Quantity); err != nil {
			log.Printf("⚠️ Authenticate: failed to migrate line %s (product %d) for user %d: %v", item.ID, item.ProductID, userID, err)
			unmigrated = append(unmigrated, item)
		}
	}

	var clearErr error
	if len(unmigrated) == 0 {
		clearErr = s.local.Clear(ctx)
	} else {
		// Keep only the lines whose drain write failed.
		clearErr = s.local.Write(ctx, unmigrated)
	}

	// The drain ran to completion (or documented partial state); the
	// session is Authenticated either way and the engine does not retry.
	s.tier = TierAuthenticated
	log.Printf("✅ Authenticate: session %s migrated %d/%d line items to user %d", s.id, len(items)-len(unmigrated), len(items), userID)

	if clearErr != nil {
		return clearErr
	}
	if len(unmigrated) > 0 {
		return fmt.Errorf("%w: %d of %d line items were not migrated", ErrUpstreamUnavailable, len(unmigrated), len(items))
	}
	return nil
}

// AddItem stores a new line item on the active tier and returns its id.
// An existing (productId, optionSelection) line is untouched; merging
// duplicates is the caller's decision, not the engine's.
func (s *Session) AddItem(ctx context.Context, productID int64, optionSelection string, quantity int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return "", fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidArgument, quantity)
	}
	if productID < 1 {
		return "", fmt.Errorf("%w: malformed product id %d", ErrInvalidArgument, productID)
	}

	switch s.tier {
	case TierAuthenticated:
		line, err := s.server.Create(ctx, s.userID, productID, optionSelection, quantity)
		if err != nil {
			return "", err
		}
		return line.ID, nil
	default:
		line, err := s.local.Add(ctx, productID, optionSelection, quantity)
		if err != nil {
			return "", err
		}
		return line.ID, nil
	}
}

// ChangeQuantity overwrites a line item's quantity in place on the active
// tier. Quantities below 1 are rejected as ErrInvalidArgument, never
// coerced into a delete; an unknown line item is ErrNotFound.
func (s *Session) ChangeQuantity(ctx context.Context, lineItemID string, newQuantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newQuantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidArgument, newQuantity)
	}

	switch s.tier {
	case TierAuthenticated:
		id, err := parseServerLineID(lineItemID)
		if err != nil {
			return err
		}
		return s.server.UpdateQuantity(ctx, id, newQuantity)
	default:
		return s.local.UpdateQuantity(ctx, lineItemID, newQuantity)
	}
}

// DeleteItem removes a line item from the active tier. Deleting an
// absent id is a no-op.
func (s *Session) DeleteItem(ctx context.Context, lineItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.tier {
	case TierAuthenticated:
		id, err := parseServerLineID(lineItemID)
		if err != nil {
			return err
		}
		return s.server.Delete(ctx, id)
	default:
		return s.local.Remove(ctx, lineItemID)
	}
}

// Server line items are keyed by their database id; the engine-level id
// is a string so both tiers share one mutator surface.
func parseServerLineID(lineItemID string) (int64, error) {
	id, err := strconv.ParseInt(lineItemID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed line item id %q", ErrInvalidArgument, lineItemID)
	}
	return id, nil
}
