package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"

	"crag-outfitters/cart"
	"crag-outfitters/db"
	"crag-outfitters/models"
)

// ServerCartRepository handles database operations for authenticated
// users' carts. Cart rows reference a product and an option label; price
// and stock are joined in at query time, never stored on the cart row.
type ServerCartRepository struct{}

// NewServerCartRepository creates a new ServerCartRepository
func NewServerCartRepository() *ServerCartRepository {
	return &ServerCartRepository{}
}

// Ensure ServerCartRepository implements ServerCartRepositoryInterface
var _ ServerCartRepositoryInterface = (*ServerCartRepository)(nil)

// List retrieves a user's cart lines joined with the catalog's current
// price, stock and display metadata, in insertion order
func (r *ServerCartRepository) List(ctx context.Context, userID int64) ([]models.PricedLineItem, error) {
	log.Printf("🛒 List: Fetching cart for user_id=%d", userID)

	query := `
		SELECT ci.id, ci.product_id, ci.option_selection, ci.quantity,
		       po.price, po.amount_in_stock,
		       p.product_name, p.brand_name, p.small_image_file1, p.option_type
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		INNER JOIN product_options po
		        ON po.product_id = ci.product_id AND po.option = ci.option_selection
		WHERE ci.user_id = $1
		ORDER BY ci.created_at ASC, ci.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ List: Error fetching cart items: %v", err)
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	defer rows.Close()

	lines := []models.PricedLineItem{}
	for rows.Next() {
		var line models.PricedLineItem
		var id int64
		err := rows.Scan(
			&id,
			&line.ProductID,
			&line.OptionSelection,
			&line.Quantity,
			&line.UnitPrice,
			&line.AmountInStock,
			&line.ProductName,
			&line.BrandName,
			&line.ImageRef,
			&line.OptionType,
		)
		if err != nil {
			log.Printf("❌ List: Error scanning cart item: %v", err)
			continue
		}
		line.ID = strconv.FormatInt(id, 10)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating cart items: %v", err)
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	log.Printf("✅ List: Fetched %d cart items for user_id=%d", len(lines), userID)
	return lines, nil
}

// Create stores a new cart line for the user. A line with the same
// (product, option) may already exist; a second line is created rather
// than merged.
func (r *ServerCartRepository) Create(ctx context.Context, userID, productID int64, optionSelection string, quantity int) (*models.LineItem, error) {
	log.Printf("🛒 Create: Adding product_id=%d option=%s qty=%d for user_id=%d", productID, optionSelection, quantity, userID)

	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", cart.ErrInvalidArgument)
	}

	// Verify the (product, option) pair exists before storing intent to
	// buy it.
	var optionID int64
	queryOption := `SELECT id FROM product_options WHERE product_id = $1 AND option = $2`
	err := db.DB.QueryRowContext(ctx, queryOption, productID, optionSelection).Scan(&optionID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ Create: No option %q on product %d", optionSelection, productID)
			return nil, fmt.Errorf("%w: product %d has no option %q", cart.ErrNotFound, productID, optionSelection)
		}
		log.Printf("❌ Create: Error checking product option: %v", err)
		return nil, fmt.Errorf("failed to check product option: %w", err)
	}

	queryInsert := `
		INSERT INTO cart_items (user_id, product_id, option_selection, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	var id int64
	err = db.DB.QueryRowContext(ctx, queryInsert, userID, productID, optionSelection, quantity).Scan(&id)
	if err != nil {
		log.Printf("❌ Create: Error inserting cart item: %v", err)
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}

	log.Printf("✅ Create: Added cart item id=%d for user_id=%d", id, userID)
	return &models.LineItem{
		ID:              strconv.FormatInt(id, 10),
		ProductID:       productID,
		OptionSelection: optionSelection,
		Quantity:        quantity,
	}, nil
}

// UpdateQuantity overwrites a cart line's quantity in place
func (r *ServerCartRepository) UpdateQuantity(ctx context.Context, lineItemID int64, quantity int) error {
	log.Printf("🛒 UpdateQuantity: Setting cart item id=%d to qty=%d", lineItemID, quantity)

	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", cart.ErrInvalidArgument)
	}

	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2`
	result, err := db.DB.ExecContext(ctx, query, quantity, lineItemID)
	if err != nil {
		log.Printf("❌ UpdateQuantity: Error updating cart item: %v", err)
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("❌ UpdateQuantity: Error getting rows affected: %v", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ UpdateQuantity: Cart item not found: id=%d", lineItemID)
		return fmt.Errorf("%w: cart item %d", cart.ErrNotFound, lineItemID)
	}

	log.Printf("✅ UpdateQuantity: Updated cart item id=%d", lineItemID)
	return nil
}

// Delete removes a cart line. Deleting an id that no longer exists is a
// no-op.
func (r *ServerCartRepository) Delete(ctx context.Context, lineItemID int64) error {
	log.Printf("🛒 Delete: Removing cart item id=%d", lineItemID)

	query := `DELETE FROM cart_items WHERE id = $1`
	if _, err := db.DB.ExecContext(ctx, query, lineItemID); err != nil {
		log.Printf("❌ Delete: Error deleting cart item: %v", err)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	log.Printf("✅ Delete: Removed cart item id=%d (if it existed)", lineItemID)
	return nil
}

// DeleteAllForUser removes every cart line owned by a user, used when the
// account itself is deleted
func (r *ServerCartRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	log.Printf("🛒 DeleteAllForUser: Removing all cart items for user_id=%d", userID)

	query := `DELETE FROM cart_items WHERE user_id = $1`
	result, err := db.DB.ExecContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ DeleteAllForUser: Error deleting cart items: %v", err)
		return fmt.Errorf("failed to delete cart items: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	log.Printf("✅ DeleteAllForUser: Removed %d cart items for user_id=%d", rowsAffected, userID)
	return nil
}
