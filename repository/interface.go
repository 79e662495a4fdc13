package repository

import (
	"context"

	"crag-outfitters/models"
)

// ProductRepositoryInterface defines the contract for catalog operations
type ProductRepositoryInterface interface {
	GetAllWithOptions(ctx context.Context) ([]models.ProductWithOptions, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductWithOptions, error)
	Search(ctx context.Context, term string) ([]models.ProductWithOptions, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductWithOptions, error)
	AddOption(ctx context.Context, productID int64, req *models.CreateProductOptionRequest) (*models.ProductOption, error)
	IncrementStock(ctx context.Context, optionID int64, amount int) error
	Delete(ctx context.Context, id int64) error
}

// ServerCartRepositoryInterface defines the contract for the
// authoritative per-user cart store
type ServerCartRepositoryInterface interface {
	List(ctx context.Context, userID int64) ([]models.PricedLineItem, error)
	Create(ctx context.Context, userID, productID int64, optionSelection string, quantity int) (*models.LineItem, error)
	UpdateQuantity(ctx context.Context, lineItemID int64, quantity int) error
	Delete(ctx context.Context, lineItemID int64) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// GuestCartRepositoryInterface defines the contract for the device-tier
// blob storage behind anonymous carts
type GuestCartRepositoryInterface interface {
	Get(ctx context.Context, scope, key string) ([]byte, bool, error)
	Put(ctx context.Context, scope, key string, value []byte) error
	Delete(ctx context.Context, scope, key string) error
}
