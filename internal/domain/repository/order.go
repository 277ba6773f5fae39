package repository

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Place stores order, details and payment, records discount usage,
	// reserves stock and clears the cart in a single transaction.
	Place(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	// UpdateStatus moves order from one status to another, failing with
	// ErrInvalidStatusTransition when the order is no longer in from. Moving
	// to a non-refundable status fails with ErrRefundInProgress while the
	// order has a pending or approved refund.
	UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, trackingNumber string) error
	// Cancel cancels an unpaid order, expires its payment and restores stock.
	Cancel(ctx context.Context, orderID int64) error
	Stats(ctx context.Context) (*model.OrderStats, error)
}
