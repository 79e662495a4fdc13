package models

// Product represents a catalog product in the database
type Product struct {
	ID              int64  `json:"id"`
	ProductName     string `json:"productName"`
	Description     string `json:"description"`
	CategoryName    string `json:"categoryName"`
	BrandName       string `json:"brandName"`
	OptionType      string `json:"optionType"` // e.g. "Size", "Length", "None"
	SmallImageFile1 string `json:"smallImageFile1"`
	SmallImageFile2 string `json:"smallImageFile2"`
	LargeImageFile  string `json:"largeImageFile"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ProductOption represents one purchasable variant of a product.
// The option label (e.g. "Small", "70M", "Default") is unique within a
// product's option set.
type ProductOption struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"productId"`
	Option        string `json:"option"`
	Price         int64  `json:"price"` // cents
	AmountInStock int    `json:"amountInStock"`
}

// ProductWithOptions is a product together with its full option list,
// fetched in one logical call
type ProductWithOptions struct {
	Product        Product         `json:"product"`
	ProductOptions []ProductOption `json:"productOptions"`
}

// ProductSnapshot is the resolver's answer for one (product, option) pair:
// current price and stock plus the display metadata the cart UI needs.
// Never persisted - it reflects catalog state at resolution time.
type ProductSnapshot struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	BrandName     string `json:"brandName"`
	OptionType    string `json:"optionType"`
	ImageRef      string `json:"imageRef"`
	Option        string `json:"option"`
	UnitPrice     int64  `json:"unitPrice"` // cents
	AmountInStock int    `json:"amountInStock"`
}

// CreateProductOptionRequest represents one option in a product create request
// Example: {"option": "Small", "amountInStock": 2, "price": 6495}
type CreateProductOptionRequest struct {
	Option        string `json:"option"`
	Price         int64  `json:"price"`
	AmountInStock int    `json:"amountInStock"`
}

// CreateProductRequest represents the request body for creating a product
// with its options in one call
type CreateProductRequest struct {
	ProductName     string                       `json:"productName"`
	Description     string                       `json:"description"`
	CategoryName    string                       `json:"categoryName"`
	BrandName       string                       `json:"brandName"`
	OptionType      string                       `json:"optionType"`
	SmallImageFile1 string                       `json:"smallImageFile1"`
	SmallImageFile2 string                       `json:"smallImageFile2"`
	LargeImageFile  string                       `json:"largeImageFile"`
	Options         []CreateProductOptionRequest `json:"options"`
}

// IncrementStockRequest represents the request body for restocking an option
// Example: {"amount": 5}
type IncrementStockRequest struct {
	Amount int `json:"amount"`
}
