package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"crag-outfitters/cart"
	"crag-outfitters/db"
	"crag-outfitters/models"
)

// ProductRepository handles database operations for the product catalog
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	id, product_name, COALESCE(description, '') as description,
	COALESCE(category_name, '') as category_name, COALESCE(brand_name, '') as brand_name,
	COALESCE(option_type, '') as option_type,
	COALESCE(small_image_file1, '') as small_image_file1,
	COALESCE(small_image_file2, '') as small_image_file2,
	COALESCE(large_image_file, '') as large_image_file,
	created_at, updated_at
`

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.ProductName,
		&p.Description,
		&p.CategoryName,
		&p.BrandName,
		&p.OptionType,
		&p.SmallImageFile1,
		&p.SmallImageFile2,
		&p.LargeImageFile,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// optionsForProduct fetches the option list for one product
func (r *ProductRepository) optionsForProduct(ctx context.Context, productID int64) ([]models.ProductOption, error) {
	query := `
		SELECT id, product_id, option, price, amount_in_stock
		FROM product_options
		WHERE product_id = $1
		ORDER BY id ASC
	`
	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product options: %w", err)
	}
	defer rows.Close()

	var options []models.ProductOption
	for rows.Next() {
		var opt models.ProductOption
		if err := rows.Scan(&opt.ID, &opt.ProductID, &opt.Option, &opt.Price, &opt.AmountInStock); err != nil {
			log.Printf("❌ optionsForProduct: Error scanning option: %v", err)
			continue
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product options: %w", err)
	}
	return options, nil
}

// GetAllWithOptions retrieves every product with its option list
func (r *ProductRepository) GetAllWithOptions(ctx context.Context) ([]models.ProductWithOptions, error) {
	log.Printf("🔍 GetAllWithOptions: Fetching all products")

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ GetAllWithOptions: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			log.Printf("❌ GetAllWithOptions: Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ GetAllWithOptions: Error iterating products: %v", err)
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	result := make([]models.ProductWithOptions, 0, len(products))
	for _, p := range products {
		options, err := r.optionsForProduct(ctx, p.ID)
		if err != nil {
			log.Printf("❌ GetAllWithOptions: Error fetching options for product %d: %v", p.ID, err)
			continue
		}
		result = append(result, models.ProductWithOptions{Product: p, ProductOptions: options})
	}

	log.Printf("✅ GetAllWithOptions: Fetched %d products", len(result))
	return result, nil
}

// GetProduct retrieves one product and its full option list in one
// logical call
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*models.ProductWithOptions, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := scanProduct(db.DB.QueryRowContext(ctx, query, id), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetProduct: Product not found: id=%d", id)
			return nil, fmt.Errorf("%w: product %d", cart.ErrNotFound, id)
		}
		log.Printf("❌ GetProduct: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	options, err := r.optionsForProduct(ctx, id)
	if err != nil {
		log.Printf("❌ GetProduct: Error fetching options: %v", err)
		return nil, err
	}

	return &models.ProductWithOptions{Product: p, ProductOptions: options}, nil
}

// Search retrieves products whose name, brand or category matches the
// term, with their options
func (r *ProductRepository) Search(ctx context.Context, term string) ([]models.ProductWithOptions, error) {
	log.Printf("🔍 Search: term=%q", term)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_name ILIKE $1 OR brand_name ILIKE $1 OR category_name ILIKE $1
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query, "%"+term+"%")
	if err != nil {
		log.Printf("❌ Search: Error searching products: %v", err)
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			log.Printf("❌ Search: Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	result := make([]models.ProductWithOptions, 0, len(products))
	for _, p := range products {
		options, err := r.optionsForProduct(ctx, p.ID)
		if err != nil {
			log.Printf("❌ Search: Error fetching options for product %d: %v", p.ID, err)
			continue
		}
		result = append(result, models.ProductWithOptions{Product: p, ProductOptions: options})
	}

	log.Printf("✅ Search: Found %d products for term=%q", len(result), term)
	return result, nil
}

// Create inserts a product and its options in one transaction
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductWithOptions, error) {
	log.Printf("📦 Create: Creating product %q with %d options", req.ProductName, len(req.Options))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryProduct := `
		INSERT INTO products (product_name, description, category_name, brand_name, option_type,
		                      small_image_file1, small_image_file2, large_image_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + productColumns + `
	`
	var p models.Product
	err = scanProduct(tx.QueryRowContext(ctx, queryProduct,
		req.ProductName,
		req.Description,
		req.CategoryName,
		req.BrandName,
		req.OptionType,
		req.SmallImageFile1,
		req.SmallImageFile2,
		req.LargeImageFile,
	), &p)
	if err != nil {
		log.Printf("❌ Create: Error inserting product: %v", err)
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	queryOption := `
		INSERT INTO product_options (product_id, option, price, amount_in_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, option, price, amount_in_stock
	`
	var options []models.ProductOption
	for _, o := range req.Options {
		var opt models.ProductOption
		err := tx.QueryRowContext(ctx, queryOption, p.ID, o.Option, o.Price, o.AmountInStock).Scan(
			&opt.ID, &opt.ProductID, &opt.Option, &opt.Price, &opt.AmountInStock,
		)
		if err != nil {
			log.Printf("❌ Create: Error inserting option %q: %v", o.Option, err)
			return nil, fmt.Errorf("failed to insert product option: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Created product id=%d with %d options", p.ID, len(options))
	return &models.ProductWithOptions{Product: p, ProductOptions: options}, nil
}

// AddOption adds one option to an existing product
func (r *ProductRepository) AddOption(ctx context.Context, productID int64, req *models.CreateProductOptionRequest) (*models.ProductOption, error) {
	log.Printf("📦 AddOption: Adding option %q to product_id=%d", req.Option, productID)

	// Verify the product exists first
	var exists int64
	err := db.DB.QueryRowContext(ctx, `SELECT id FROM products WHERE id = $1`, productID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: product %d", cart.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to check product: %w", err)
	}

	query := `
		INSERT INTO product_options (product_id, option, price, amount_in_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, option, price, amount_in_stock
	`
	var opt models.ProductOption
	err = db.DB.QueryRowContext(ctx, query, productID, req.Option, req.Price, req.AmountInStock).Scan(
		&opt.ID, &opt.ProductID, &opt.Option, &opt.Price, &opt.AmountInStock,
	)
	if err != nil {
		log.Printf("❌ AddOption: Error inserting option: %v", err)
		return nil, fmt.Errorf("failed to insert product option: %w", err)
	}

	log.Printf("✅ AddOption: Added option id=%d to product_id=%d", opt.ID, productID)
	return &opt, nil
}

// IncrementStock adds a positive amount to an option's stock
func (r *ProductRepository) IncrementStock(ctx context.Context, optionID int64, amount int) error {
	log.Printf("📦 IncrementStock: option_id=%d amount=%d", optionID, amount)

	if amount < 1 || amount >= 1000 {
		return fmt.Errorf("%w: amount must be between 1 and 999", cart.ErrInvalidArgument)
	}

	query := `UPDATE product_options SET amount_in_stock = amount_in_stock + $1 WHERE id = $2`
	result, err := db.DB.ExecContext(ctx, query, amount, optionID)
	if err != nil {
		log.Printf("❌ IncrementStock: Error updating option: %v", err)
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: product option %d", cart.ErrNotFound, optionID)
	}

	log.Printf("✅ IncrementStock: Incremented option_id=%d by %d", optionID, amount)
	return nil
}

// Delete removes a product and all of its options. A product still
// referenced by order items cannot be deleted.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("📦 Delete: Deleting product id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Delete: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Refuse to delete a product that is used in orders
	var orderItemID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM order_items WHERE product_id = $1 LIMIT 1`, id).Scan(&orderItemID)
	if err == nil {
		log.Printf("❌ Delete: Product %d is referenced by order items", id)
		return fmt.Errorf("%w: product %d is used in orders and cannot be deleted", cart.ErrInvalidArgument, id)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check order items: %w", err)
	}

	var productID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = $1`, id).Scan(&productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: product %d", cart.ErrNotFound, id)
		}
		return fmt.Errorf("failed to check product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_options WHERE product_id = $1`, id); err != nil {
		log.Printf("❌ Delete: Error deleting options: %v", err)
		return fmt.Errorf("failed to delete product options: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		log.Printf("❌ Delete: Error deleting product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Delete: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Delete: Deleted product id=%d", id)
	return nil
}
