package models

// UnloadedItemCount is the sentinel item count meaning "cart not yet
// loaded". The UI uses it to tell loading apart from an empty cart, so a
// slow fetch never shows a stale count as if it were current.
const UnloadedItemCount = -1

// LineItem is a visitor's intent to buy a quantity of one product option.
// Quantity is always >= 1; a quantity of zero is never stored.
type LineItem struct {
	ID              string `json:"id"`
	ProductID       int64  `json:"productId"`
	OptionSelection string `json:"optionSelection"`
	Quantity        int    `json:"quantity"`
}

// PricedLineItem is a LineItem enriched with a resolved snapshot of the
// product's current price, stock and display metadata. Produced
// transiently at aggregation time, never persisted.
type PricedLineItem struct {
	ID              string `json:"id"`
	ProductID       int64  `json:"productId"`
	OptionSelection string `json:"optionSelection"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unitPrice"` // cents
	AmountInStock   int    `json:"amountInStock"`
	ProductName     string `json:"productName"`
	BrandName       string `json:"brandName"`
	ImageRef        string `json:"imageRef"`
	OptionType      string `json:"optionType"`
}

// FailedLine records one line item that could not be resolved during
// aggregation, so partial results can name what was dropped.
type FailedLine struct {
	LineItemID string `json:"lineItemId"`
	ProductID  int64  `json:"productId"`
	Reason     string `json:"reason"`
}

// CartView is the aggregated, display-ready view of a cart.
// ItemCount and SubTotal are always derived from LineItems, never
// independently mutated. Partial is set when one or more line items
// failed to resolve and were excluded from the totals.
type CartView struct {
	LineItems   []PricedLineItem `json:"lineItems"`
	ItemCount   int              `json:"itemCount"`
	SubTotal    int64            `json:"subTotal"` // cents
	Partial     bool             `json:"partial"`
	FailedLines []FailedLine     `json:"failedLines,omitempty"`
}

// NewUnloadedCartView returns the view a session starts with, before any
// aggregation has run
func NewUnloadedCartView() CartView {
	return CartView{
		LineItems: []PricedLineItem{},
		ItemCount: UnloadedItemCount,
		SubTotal:  0,
	}
}

// AddItemRequest represents the request body for adding a line item
// Example: {"productId": 14, "optionSelection": "70M", "quantity": 1}
type AddItemRequest struct {
	ProductID       int64  `json:"productId"`
	OptionSelection string `json:"optionSelection"`
	Quantity        int    `json:"quantity"`
}

// ChangeQuantityRequest represents the request body for updating a line
// item's quantity. Quantities below 1 are rejected, not coerced to a delete.
// Example: {"quantity": 3}
type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LoginSyncRequest carries the authenticated signal from the auth
// collaborator into the cart engine
// Example: {"userId": 42}
type LoginSyncRequest struct {
	UserID int64 `json:"userId"`
}
