package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// PaymentUseCase applies gateway outcomes to payments, orders and refunds.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	refunds  repository.RefundRepository
	gateway  PaymentGateway
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, refunds repository.RefundRepository, gateway PaymentGateway, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, refunds: refunds, gateway: gateway, logger: logger, now: time.Now}
}

// HandleInvoice reconciles an invoice status with the local payment.
func (u *PaymentUseCase) HandleInvoice(ctx context.Context, invoice model.Invoice) error {
	externalID := strings.TrimSpace(invoice.ExternalID)
	if externalID == "" {
		return domainErrors.ErrNotFound
	}
	invoice.Status = model.InvoiceStatus(strings.ToUpper(string(invoice.Status)))

	var applied *model.PaymentSettlement
	err := u.payments.Settle(ctx, externalID, func(payment model.Payment, order model.Order) (*model.PaymentSettlement, error) {
		settlement, err := ReconcileInvoice(payment, order, invoice, u.now())
		applied = settlement
		return settlement, err
	})
	if err != nil {
		return err
	}

	u.logger.Info("payment reconciled",
		slog.String("order", externalID),
		slog.String("invoice_status", string(invoice.Status)),
		slog.String("payment_status", string(applied.PaymentStatus)),
		slog.String("order_status", string(applied.OrderStatus)),
	)
	return nil
}

// HandleRefund applies a refund callback to the approved refund.
func (u *PaymentUseCase) HandleRefund(ctx context.Context, event model.RefundEvent) error {
	reference := strings.TrimSpace(event.ReferenceID)
	if reference == "" {
		return domainErrors.ErrNotFound
	}
	event.Status = model.RefundEventStatus(strings.ToUpper(string(event.Status)))

	var applied *model.RefundSettlement
	err := u.refunds.Settle(ctx, reference, func(refund model.Refund, _ model.Payment, order model.Order) (*model.RefundSettlement, error) {
		settlement, err := SettleRefund(refund, order, event)
		applied = settlement
		return settlement, err
	})
	if err != nil {
		return err
	}

	u.logger.Info("refund reconciled",
		slog.String("reference", reference),
		slog.String("refund_status", string(applied.RefundStatus)),
		slog.String("failure_code", applied.FailureCode),
	)
	return nil
}

// StalePayments returns unpaid payments whose invoice already expired.
func (u *PaymentUseCase) StalePayments(ctx context.Context, limit int) ([]model.Payment, error) {
	return u.payments.ListStale(ctx, u.now(), limit)
}

// FetchInvoice reads invoice state from the gateway.
func (u *PaymentUseCase) FetchInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	return u.gateway.GetInvoice(ctx, invoiceID)
}
