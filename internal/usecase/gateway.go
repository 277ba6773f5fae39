package usecase

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// PaymentGateway is the subset of the payment provider used by use cases.
type PaymentGateway interface {
	CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error)
	ExpireInvoice(ctx context.Context, invoiceID string) error
	CreateRefund(ctx context.Context, req model.RefundRequest) (*model.RefundReceipt, error)
}
