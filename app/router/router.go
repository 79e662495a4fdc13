package router

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"crag-outfitters/app/controller"
)

const sessionCookieName = "sid"

type Controllers struct {
	Cart    *controller.CartController
	Product *controller.ProductController
	User    *controller.UserController
	Image   *controller.ImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// sessionMiddleware ensures every request carries a visitor session id,
// minting one and setting the cookie on first contact
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			log.Printf("🆕 Session: minted session id %s for %s %s", sessionID, r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, controller.WithSessionID(r, sessionID))
	})
}

// SetupRoutes builds the route table and returns the root handler
func SetupRoutes(controllers *Controllers) http.Handler {
	r := mux.NewRouter()
	r.Use(sessionMiddleware)

	// Ping endpoint
	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	// Cart routes
	r.HandleFunc("/cart", controllers.Cart.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", controllers.Cart.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", controllers.Cart.UpdateItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", controllers.Cart.DeleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart/login-sync", controllers.Cart.LoginSync).Methods(http.MethodPost)

	// Catalog routes (search before {id} so "search" isn't parsed as an id)
	r.HandleFunc("/products", controllers.Product.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/search", controllers.Product.SearchProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", controllers.Product.GetProduct).Methods(http.MethodGet)

	// Admin catalog routes
	r.HandleFunc("/admin/products", controllers.Product.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/admin/products/{id:[0-9]+}", controllers.Product.DeleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/admin/products/{id:[0-9]+}/options", controllers.Product.AddOption).Methods(http.MethodPost)
	r.HandleFunc("/admin/options/{id:[0-9]+}/stock", controllers.Product.IncrementStock).Methods(http.MethodPost)

	// Account lifecycle routes
	r.HandleFunc("/users/{id:[0-9]+}/cart", controllers.User.DeleteAccountData).Methods(http.MethodDelete)
	r.HandleFunc("/session/end", controllers.User.EndSession).Methods(http.MethodPost)

	// Image variants
	r.HandleFunc("/images/{file}", controllers.Image.GetImage).Methods(http.MethodGet)

	return r
}
