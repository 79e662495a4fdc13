package app

import (
	"fmt"
	"net/http"
	"os"

	"crag-outfitters/app/controller"
	"crag-outfitters/app/router"
	"crag-outfitters/cart"
	"crag-outfitters/db"
	"crag-outfitters/repository"
	"crag-outfitters/service"
)

// Initialize initializes the application and returns the root HTTP handler
func Initialize() (http.Handler, error) {
	// Initialize database connections
	if err := db.InitDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.InitGuestDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize guest cart database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	serverCartRepo := repository.NewServerCartRepository()
	guestCartRepo := repository.NewGuestCartRepository()

	// Wire the cart engine: catalog-backed snapshot resolver, concurrent
	// aggregator, and the per-session manager over both cart tiers
	resolver := cart.NewCatalogResolver(productRepo)
	aggregator := cart.NewAggregator(resolver)
	manager := cart.NewManager(guestCartRepo, serverCartRepo, aggregator)

	// Image variant service
	imageDir := os.Getenv("PRODUCT_IMAGE_DIR")
	if imageDir == "" {
		imageDir = "images"
	}
	imageService, err := service.NewImageService(imageDir)
	if err != nil {
		return nil, err
	}

	// Create controllers
	controllers := &router.Controllers{
		Cart:    controller.NewCartController(manager),
		Product: controller.NewProductController(productRepo),
		User:    controller.NewUserController(serverCartRepo, manager),
		Image:   controller.NewImageController(imageService),
	}

	return router.SetupRoutes(controllers), nil
}
