package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB holds the Postgres connection used by the catalog and the
// authoritative (server-side) cart store
var DB *sql.DB

// GuestDB holds the SQLite connection backing the device-tier guest cart
// storage. One row per visitor session, absence is a valid state.
var GuestDB *sql.DB

// InitDB initializes the Postgres connection from environment variables
func InitDB() error {
	// Get database connection string from environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Build connection string from individual variables
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// InitGuestDB opens (or creates) the SQLite file that backs guest carts.
// Path comes from GUEST_CART_DB, defaulting to guest_carts.db in the
// working directory.
func InitGuestDB() error {
	path := os.Getenv("GUEST_CART_DB")
	if path == "" {
		path = "guest_carts.db"
	}

	var err error
	GuestDB, err = sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open guest cart database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS guest_carts (
			session_id TEXT NOT NULL,
			storage_key TEXT NOT NULL,
			payload BLOB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, storage_key)
		)
	`
	if _, err := GuestDB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create guest cart schema: %w", err)
	}

	log.Printf("✓ Guest cart storage ready at %s", path)
	return nil
}

// CloseDB closes the Postgres connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// CloseGuestDB closes the SQLite connection
func CloseGuestDB() error {
	if GuestDB != nil {
		return GuestDB.Close()
	}
	return nil
}
