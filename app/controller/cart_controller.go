package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"crag-outfitters/cart"
	"crag-outfitters/models"
	"crag-outfitters/utils"
)

// CartController handles HTTP requests for the visitor's cart. Every
// handler resolves the visitor's session first; which store the request
// hits is the session's business, not the controller's.
type CartController struct {
	manager *cart.Manager
}

// NewCartController creates a new CartController
func NewCartController(manager *cart.Manager) *CartController {
	return &CartController{
		manager: manager,
	}
}

// writeCartError maps engine errors onto HTTP status codes
func writeCartError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	switch {
	case errors.Is(err, cart.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrUpstreamUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, fmt.Sprintf("Internal error: %v", err), http.StatusInternalServerError)
	}
}

// GetCart handles GET /cart
// Loads and aggregates the active tier's cart for the visitor's session
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCart: Received %s request to %s", r.Method, r.URL.Path)

	session := c.manager.Session(SessionID(r))

	view, err := session.Load(r.Context())
	if err != nil {
		writeCartError(w, "GetCart", err)
		return
	}

	log.Printf("💰 GetCart: Loaded cart - itemCount=%d, subTotal=%s, partial=%v", view.ItemCount, utils.FormatUSD(view.SubTotal), view.Partial)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("❌ GetCart: Error encoding response: %v", err)
	}
}

// AddItem handles POST /cart/items
// Stores a new line item on the active tier. An existing line with the
// same product and option is left alone; a second line is created.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	log.Printf("📋 AddItem: Request decoded - productId=%d, optionSelection=%s, quantity=%d", req.ProductID, req.OptionSelection, req.Quantity)

	session := c.manager.Session(SessionID(r))

	lineItemID, err := session.AddItem(r.Context(), req.ProductID, req.OptionSelection, req.Quantity)
	if err != nil {
		writeCartError(w, "AddItem", err)
		return
	}

	log.Printf("✅ AddItem: Added line item id=%s", lineItemID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"lineItemId": lineItemID})
}

// UpdateItem handles PUT /cart/items/{id}
// Overwrites a line item's quantity in place. Quantities below 1 are a
// 400, never an implied delete.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateItem: Received %s request to %s", r.Method, r.URL.Path)

	lineItemID := mux.Vars(r)["id"]

	var req models.ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session := c.manager.Session(SessionID(r))

	if err := session.ChangeQuantity(r.Context(), lineItemID, req.Quantity); err != nil {
		writeCartError(w, "UpdateItem", err)
		return
	}

	log.Printf("✅ UpdateItem: Set line item id=%s to quantity=%d", lineItemID, req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /cart/items/{id}
// Removing an id that no longer exists still returns 204
func (c *CartController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteItem: Received %s request to %s", r.Method, r.URL.Path)

	lineItemID := mux.Vars(r)["id"]

	session := c.manager.Session(SessionID(r))

	if err := session.DeleteItem(r.Context(), lineItemID); err != nil {
		writeCartError(w, "DeleteItem", err)
		return
	}

	log.Printf("✅ DeleteItem: Removed line item id=%s (if it existed)", lineItemID)
	w.WriteHeader(http.StatusNoContent)
}

// LoginSync handles POST /cart/login-sync
// The auth collaborator calls this once after login; the session drains
// its local cart into the server store and switches tiers. A partial
// drain leaves the failed lines locally and reports 502 so the caller
// can re-trigger.
func (c *CartController) LoginSync(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 LoginSync: Received %s request to %s", r.Method, r.URL.Path)

	var req models.LoginSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ LoginSync: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.UserID <= 0 {
		log.Printf("❌ LoginSync: Invalid userId: %d", req.UserID)
		http.Error(w, "userId must be greater than 0", http.StatusBadRequest)
		return
	}

	session := c.manager.Session(SessionID(r))

	if err := session.Authenticate(r.Context(), req.UserID); err != nil {
		writeCartError(w, "LoginSync", err)
		return
	}

	// Re-aggregate so the caller gets the merged server cart back in one
	// round trip.
	view, err := session.Load(r.Context())
	if err != nil {
		writeCartError(w, "LoginSync", err)
		return
	}

	log.Printf("✅ LoginSync: Session migrated to user_id=%d, itemCount=%d", req.UserID, view.ItemCount)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("❌ LoginSync: Error encoding response: %v", err)
	}
}
