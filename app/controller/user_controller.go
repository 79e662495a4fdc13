package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crag-outfitters/cart"
	"crag-outfitters/repository"
)

// UserController handles the cart-side effects of account lifecycle
// events. Account records themselves live with the auth collaborator;
// this controller only cleans up what the cart engine owns.
type UserController struct {
	serverCarts repository.ServerCartRepositoryInterface
	manager     *cart.Manager
}

// NewUserController creates a new UserController
func NewUserController(serverCarts repository.ServerCartRepositoryInterface, manager *cart.Manager) *UserController {
	return &UserController{
		serverCarts: serverCarts,
		manager:     manager,
	}
}

// DeleteAccountData handles DELETE /users/{id}/cart
// Called when an account is deleted: drops every server cart line the
// user owns and tears down the live session
func (c *UserController) DeleteAccountData(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteAccountData: Received %s request to %s", r.Method, r.URL.Path)

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		log.Printf("❌ DeleteAccountData: Invalid user id: %v", err)
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := c.serverCarts.DeleteAllForUser(r.Context(), userID); err != nil {
		log.Printf("❌ DeleteAccountData: Error deleting cart data: %v", err)
		http.Error(w, fmt.Sprintf("Failed to delete cart data: %v", err), http.StatusInternalServerError)
		return
	}

	c.manager.End(SessionID(r))

	log.Printf("✅ DeleteAccountData: Removed cart data for user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}

// EndSession handles POST /session/end
// Logout or session expiry: the next request with the same session id
// starts over as an anonymous visitor with an unloaded cart view
func (c *UserController) EndSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 EndSession: Received %s request to %s", r.Method, r.URL.Path)

	c.manager.End(SessionID(r))

	log.Printf("✅ EndSession: Ended session %s", SessionID(r))
	w.WriteHeader(http.StatusNoContent)
}
