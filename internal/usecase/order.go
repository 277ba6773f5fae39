package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	gateway PaymentGateway
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, gateway PaymentGateway, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, gateway: gateway, logger: logger}
}

// ListByUser returns customer orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// List returns all orders, optionally filtered by status.
func (u *OrderUseCase) List(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if status != nil && !status.Valid() {
		return nil, domainErrors.ErrInvalidStatusTransition
	}
	return u.orders.List(ctx, status)
}

// GetByNumber returns order with details and payment.
func (u *OrderUseCase) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	number = strings.TrimSpace(number)
	if !ValidateOrderNumber(number) {
		return nil, domainErrors.ErrInvalidOrderNumber
	}
	return u.orders.GetByNumber(ctx, number)
}

// GetForUser returns order only when it belongs to the user.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID int64, number string) (*model.Order, error) {
	order, err := u.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// CancelForUser cancels an unpaid order of the customer.
func (u *OrderUseCase) CancelForUser(ctx context.Context, userID int64, number string) error {
	order, err := u.GetForUser(ctx, userID, number)
	if err != nil {
		return err
	}
	return u.cancel(ctx, order)
}

// Cancel cancels an unpaid order from the back office.
func (u *OrderUseCase) Cancel(ctx context.Context, number string) error {
	order, err := u.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	return u.cancel(ctx, order)
}

func (u *OrderUseCase) cancel(ctx context.Context, order *model.Order) error {
	if order.Status != model.OrderStatusWaitingPayment {
		return domainErrors.ErrOrderNotCancelable
	}
	if err := u.orders.Cancel(ctx, order.ID); err != nil {
		return err
	}

	if order.Payment != nil && order.Payment.InvoiceID != "" {
		if err := u.gateway.ExpireInvoice(ctx, order.Payment.InvoiceID); err != nil {
			u.logger.Warn("expire invoice failed",
				slog.String("order", order.Number),
				slog.String("invoice", order.Payment.InvoiceID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// ConfirmReceived lets the customer complete a shipped order.
func (u *OrderUseCase) ConfirmReceived(ctx context.Context, userID int64, number string) error {
	order, err := u.GetForUser(ctx, userID, number)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusShipping {
		return domainErrors.ErrInvalidStatusTransition
	}
	return u.orders.UpdateStatus(ctx, order.ID, order.Status, model.OrderStatusCompleted, order.TrackingNumber)
}

// UpdateStatus advances fulfilment status from the back office. Payment
// driven statuses are only reachable through gateway callbacks.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, number string, status model.OrderStatus, trackingNumber string) error {
	switch status {
	case model.OrderStatusProcessing, model.OrderStatusShipping, model.OrderStatusCompleted:
	default:
		return domainErrors.ErrInvalidStatusTransition
	}

	order, err := u.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(status) {
		return domainErrors.ErrInvalidStatusTransition
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if status == model.OrderStatusShipping && trackingNumber == "" {
		return domainErrors.ErrTrackingNumberRequired
	}
	if trackingNumber == "" {
		trackingNumber = order.TrackingNumber
	}

	return u.orders.UpdateStatus(ctx, order.ID, order.Status, status, trackingNumber)
}

// Stats summarizes orders for the dashboard.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.OrderStats, error) {
	return u.orders.Stats(ctx)
}
