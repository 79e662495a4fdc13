package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"crag-outfitters/cart"
	"crag-outfitters/models"
	"crag-outfitters/repository"
)

// ProductController handles HTTP requests for the catalog
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// ListProducts handles GET /products
// Returns every product with its full option list
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListProducts: Received %s request to %s", r.Method, r.URL.Path)

	products, err := c.repository.GetAllWithOptions(r.Context())
	if err != nil {
		log.Printf("❌ ListProducts: Error fetching products: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch products: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListProducts: Returning %d products", len(products))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Printf("❌ ListProducts: Error encoding response: %v", err)
	}
}

// GetProduct handles GET /products/{id}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetProduct: Received %s request to %s", r.Method, r.URL.Path)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		log.Printf("❌ GetProduct: Invalid product id: %v", err)
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := c.repository.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			log.Printf("❌ GetProduct: Product not found: id=%d", id)
			http.Error(w, fmt.Sprintf("Product not found: %d", id), http.StatusNotFound)
			return
		}
		log.Printf("❌ GetProduct: Error fetching product: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch product: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetProduct: Returning product id=%d with %d options", id, len(product.ProductOptions))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Printf("❌ GetProduct: Error encoding response: %v", err)
	}
}

// SearchProducts handles GET /products/search?term=...
// Matches the term against product, brand and category names
func (c *ProductController) SearchProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SearchProducts: Received %s request to %s", r.Method, r.URL.Path)

	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		log.Printf("❌ SearchProducts: term cannot be empty")
		http.Error(w, "term cannot be empty", http.StatusBadRequest)
		return
	}

	products, err := c.repository.Search(r.Context(), term)
	if err != nil {
		log.Printf("❌ SearchProducts: Error searching products: %v", err)
		http.Error(w, fmt.Sprintf("Failed to search products: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ SearchProducts: term=%q matched %d products", term, len(products))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Printf("❌ SearchProducts: Error encoding response: %v", err)
	}
}

// CreateProduct handles POST /admin/products
// Creates a product and its options in one transaction
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateProduct: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ProductName) == "" {
		log.Printf("❌ CreateProduct: productName cannot be empty")
		http.Error(w, "productName cannot be empty", http.StatusBadRequest)
		return
	}
	if len(req.Options) == 0 {
		log.Printf("❌ CreateProduct: at least one option is required")
		http.Error(w, "at least one option is required", http.StatusBadRequest)
		return
	}

	product, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidArgument) {
			log.Printf("❌ CreateProduct: Invalid request: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("❌ CreateProduct: Error creating product: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create product: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CreateProduct: Created product id=%d with %d options", product.Product.ID, len(product.ProductOptions))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Printf("❌ CreateProduct: Error encoding response: %v", err)
	}
}

// AddOption handles POST /admin/products/{id}/options
func (c *ProductController) AddOption(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddOption: Received %s request to %s", r.Method, r.URL.Path)

	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		log.Printf("❌ AddOption: Invalid product id: %v", err)
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req models.CreateProductOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddOption: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Option) == "" {
		log.Printf("❌ AddOption: option cannot be empty")
		http.Error(w, "option cannot be empty", http.StatusBadRequest)
		return
	}

	option, err := c.repository.AddOption(r.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			log.Printf("❌ AddOption: Product not found: id=%d", productID)
			http.Error(w, fmt.Sprintf("Product not found: %d", productID), http.StatusNotFound)
			return
		}
		log.Printf("❌ AddOption: Error adding option: %v", err)
		http.Error(w, fmt.Sprintf("Failed to add option: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ AddOption: Added option id=%d (%s) to product id=%d", option.ID, option.Option, productID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(option); err != nil {
		log.Printf("❌ AddOption: Error encoding response: %v", err)
	}
}

// IncrementStock handles POST /admin/options/{id}/stock
// Adds inbound stock to an option
func (c *ProductController) IncrementStock(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 IncrementStock: Received %s request to %s", r.Method, r.URL.Path)

	optionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		log.Printf("❌ IncrementStock: Invalid option id: %v", err)
		http.Error(w, "Invalid option id", http.StatusBadRequest)
		return
	}

	var req models.IncrementStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ IncrementStock: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.repository.IncrementStock(r.Context(), optionID, req.Amount); err != nil {
		switch {
		case errors.Is(err, cart.ErrNotFound):
			log.Printf("❌ IncrementStock: Option not found: id=%d", optionID)
			http.Error(w, fmt.Sprintf("Option not found: %d", optionID), http.StatusNotFound)
		case errors.Is(err, cart.ErrInvalidArgument):
			log.Printf("❌ IncrementStock: Invalid amount: %d", req.Amount)
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("❌ IncrementStock: Error incrementing stock: %v", err)
			http.Error(w, fmt.Sprintf("Failed to increment stock: %v", err), http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ IncrementStock: Added %d units to option id=%d", req.Amount, optionID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}
// Refuses to delete a product that completed orders still reference
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteProduct: Received %s request to %s", r.Method, r.URL.Path)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		log.Printf("❌ DeleteProduct: Invalid product id: %v", err)
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, cart.ErrNotFound):
			log.Printf("❌ DeleteProduct: Product not found: id=%d", id)
			http.Error(w, fmt.Sprintf("Product not found: %d", id), http.StatusNotFound)
		case errors.Is(err, cart.ErrInvalidArgument):
			log.Printf("❌ DeleteProduct: Cannot delete product id=%d: %v", id, err)
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("❌ DeleteProduct: Error deleting product: %v", err)
			http.Error(w, fmt.Sprintf("Failed to delete product: %v", err), http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ DeleteProduct: Deleted product id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
