package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"crag-outfitters/app"
	"crag-outfitters/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}

	// Initialize application
	handler, err := app.Initialize()
	if err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()
	defer db.CloseGuestDB()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present (PORT from Render doesn't include it)
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
