package dto

// AddCartItemRequest puts a product or one of its variants into the cart.
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	VariantID *int64 `json:"variant_id" validate:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest changes quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ApplyDiscountRequest attaches a voucher code.
type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// CartItemResponse describes a cart line.
type CartItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	VariantID   *int64 `json:"variant_id,omitempty"`
	ProductName string `json:"product_name"`
	ProductSlug string `json:"product_slug"`
	VariantName string `json:"variant_name,omitempty"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Weight      int    `json:"weight"`
	Subtotal    int64  `json:"subtotal"`
}

// CartResponse is the aggregated cart.
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	Subtotal       int64              `json:"subtotal"`
	TotalWeight    int                `json:"total_weight"`
	DiscountCode   string             `json:"discount_code,omitempty"`
	DiscountAmount int64              `json:"discount_amount"`
	Total          int64              `json:"total"`
}
