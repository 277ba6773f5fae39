package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// GatewayStub mimics the payment gateway and records calls.
type GatewayStub struct {
	CreateInvoiceFn func(context.Context, model.InvoiceRequest) (*model.Invoice, error)
	GetInvoiceFn    func(context.Context, string) (*model.Invoice, error)
	ExpireFn        func(context.Context, string) error
	CreateRefundFn  func(context.Context, model.RefundRequest) (*model.RefundReceipt, error)

	mu       sync.Mutex
	Invoices []model.InvoiceRequest
	Expired  []string
	Refunds  []model.RefundRequest
}

// CreateInvoice returns a pending invoice unless overridden.
func (s *GatewayStub) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	s.mu.Lock()
	s.Invoices = append(s.Invoices, req)
	s.mu.Unlock()
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, req)
	}
	return &model.Invoice{
		ID:         "inv-" + req.ExternalID,
		ExternalID: req.ExternalID,
		Status:     model.InvoiceStatusPending,
		Amount:     req.Amount,
		InvoiceURL: "https://checkout.xendit.co/web/inv-" + req.ExternalID,
		ExpiresAt:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// GetInvoice returns configured invoice state.
func (s *GatewayStub) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	if s.GetInvoiceFn != nil {
		return s.GetInvoiceFn(ctx, id)
	}
	return &model.Invoice{ID: id, Status: model.InvoiceStatusPending}, nil
}

// ExpireInvoice records expired invoices.
func (s *GatewayStub) ExpireInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	s.Expired = append(s.Expired, id)
	s.mu.Unlock()
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, id)
	}
	return nil
}

// CreateRefund records refund submissions.
func (s *GatewayStub) CreateRefund(ctx context.Context, req model.RefundRequest) (*model.RefundReceipt, error) {
	s.mu.Lock()
	s.Refunds = append(s.Refunds, req)
	s.mu.Unlock()
	if s.CreateRefundFn != nil {
		return s.CreateRefundFn(ctx, req)
	}
	return &model.RefundReceipt{ID: "rfd-" + req.ReferenceID, Status: "PENDING"}, nil
}
