package repository

import (
	"context"
	"time"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// PaymentDecision computes the settlement of a locked payment and its order.
type PaymentDecision func(payment model.Payment, order model.Order) (*model.PaymentSettlement, error)

// RefundDecision computes the settlement of a locked refund.
type RefundDecision func(refund model.Refund, payment model.Payment, order model.Order) (*model.RefundSettlement, error)

// PaymentRepository manages order payments.
type PaymentRepository interface {
	// Settle locks payment by external id together with its order, asks decide
	// for the outcome and applies it in the same transaction.
	Settle(ctx context.Context, externalID string, decide PaymentDecision) error
	// ListStale returns unpaid payments whose invoice expired before the given
	// moment, least recently checked first.
	ListStale(ctx context.Context, before time.Time, limit int) ([]model.Payment, error)
}

// RefundRepository manages refund requests.
type RefundRepository interface {
	Create(ctx context.Context, refund model.Refund) (*model.Refund, error)
	GetByID(ctx context.Context, id int64) (*model.Refund, error)
	List(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error)
	Approve(ctx context.Context, id int64, reference, note string) (*model.Refund, error)
	Reject(ctx context.Context, id int64, note string) (*model.Refund, error)
	SetExternalID(ctx context.Context, id int64, externalID string) error
	MarkFailed(ctx context.Context, id int64, code, reason string) error
	Settle(ctx context.Context, reference string, decide RefundDecision) error
}
