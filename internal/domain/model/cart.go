package model

// Cart is a per-user basket.
type Cart struct {
	ID         int64
	UserID     int64
	DiscountID *int64
	Items      []CartItem
}

// CartItem keeps the price snapshotted when the item was added.
// Name, weight and stock come from the current product or variant row.
type CartItem struct {
	ID          int64
	ProductID   int64
	VariantID   *int64
	ProductName string
	ProductSlug string
	VariantName string
	Price       int64
	Quantity    int
	Weight      int
	Stock       int
}

// Subtotal returns price multiplied by quantity.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// TotalWeight returns line weight in grams.
func (i CartItem) TotalWeight() int {
	return i.Weight * i.Quantity
}

// CartSummary aggregates cart lines with the applied discount.
type CartSummary struct {
	CartID         int64
	Items          []CartItem
	Subtotal       int64
	TotalWeight    int
	Discount       *Discount
	DiscountAmount int64
	Total          int64
}
