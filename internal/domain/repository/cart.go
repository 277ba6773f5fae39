package repository

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// CartRepository manages per-user baskets.
type CartRepository interface {
	// Get returns the user's cart, creating an empty one when absent.
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	// AddItem merges quantity into an existing line of the same product and
	// variant, refreshing its price snapshot.
	AddItem(ctx context.Context, userID, productID int64, variantID *int64, price int64, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	SetDiscount(ctx context.Context, userID int64, discountID *int64) error
}
