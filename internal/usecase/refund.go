package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// RefundUseCase handles refund requests and their approval.
type RefundUseCase struct {
	refunds repository.RefundRepository
	orders  *OrderUseCase
	gateway PaymentGateway
	logger  *slog.Logger
	newRef  func() string
}

// NewRefundUseCase constructs RefundUseCase.
func NewRefundUseCase(refunds repository.RefundRepository, orders *OrderUseCase, gateway PaymentGateway, logger *slog.Logger) *RefundUseCase {
	return &RefundUseCase{
		refunds: refunds,
		orders:  orders,
		gateway: gateway,
		logger:  logger,
		newRef:  func() string { return uuid.NewString() },
	}
}

// Request files a refund for a paid order of the customer.
func (u *RefundUseCase) Request(ctx context.Context, userID int64, number, reason string) (*model.Refund, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	order, err := u.orders.GetForUser(ctx, userID, number)
	if err != nil {
		return nil, err
	}
	if !order.Status.Refundable() || order.Payment == nil || !order.Payment.Status.Captured() {
		return nil, domainErrors.ErrRefundNotAllowed
	}

	refund, err := u.refunds.Create(ctx, model.Refund{
		PaymentID:   order.Payment.ID,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Amount:      order.Payment.Amount,
		Reason:      reason,
		Status:      model.RefundStatusPending,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrRefundInProgress
		}
		return nil, err
	}
	return refund, nil
}

// List returns refunds, optionally filtered by status.
func (u *RefundUseCase) List(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error) {
	return u.refunds.List(ctx, status)
}

// Approve marks refund approved and submits it to the gateway. The order must
// not have left the warehouse yet. A rejected submission marks the refund failed.
func (u *RefundUseCase) Approve(ctx context.Context, id int64, note string) (*model.Refund, error) {
	current, err := u.refunds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.RefundStatusPending {
		return nil, domainErrors.ErrRefundNotAllowed
	}

	order, err := u.orders.GetByNumber(ctx, current.OrderNumber)
	if err != nil {
		return nil, err
	}
	if !order.Status.Refundable() || order.Payment == nil || !order.Payment.Status.Captured() {
		return nil, domainErrors.ErrRefundNotAllowed
	}

	refund, err := u.refunds.Approve(ctx, id, u.newRef(), strings.TrimSpace(note))
	if err != nil {
		return nil, err
	}

	receipt, err := u.gateway.CreateRefund(ctx, model.RefundRequest{
		ReferenceID: refund.Reference,
		InvoiceID:   order.Payment.InvoiceID,
		Amount:      refund.Amount,
		Reason:      refund.Reason,
	})
	if err != nil {
		u.logger.Error("submit refund failed",
			slog.String("order", order.Number),
			slog.String("reference", refund.Reference),
			slog.String("error", err.Error()),
		)
		reason := RefundFailureMessage("")
		if markErr := u.refunds.MarkFailed(ctx, refund.ID, "SUBMIT_FAILED", reason); markErr != nil {
			return nil, markErr
		}
		refund.Status = model.RefundStatusFailed
		refund.FailureCode = "SUBMIT_FAILED"
		refund.FailureReason = reason
		return refund, nil
	}

	if err := u.refunds.SetExternalID(ctx, refund.ID, receipt.ID); err != nil {
		return nil, err
	}
	refund.ExternalID = receipt.ID
	return refund, nil
}

// Reject declines a pending refund.
func (u *RefundUseCase) Reject(ctx context.Context, id int64, note string) (*model.Refund, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	current, err := u.refunds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.RefundStatusPending {
		return nil, domainErrors.ErrRefundNotAllowed
	}
	return u.refunds.Reject(ctx, id, note)
}
