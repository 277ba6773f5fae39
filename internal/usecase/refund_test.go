package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	testhelpers "github.com/polkiloo/gophershop/internal/test"
)

func paidOrder(status model.OrderStatus) model.Order {
	order := orderWith(11, 7, status)
	order.Payment.Status = model.PaymentStatusPaid
	return order
}

func newRefundFixture(order model.Order) (*RefundUseCase, *testhelpers.RefundRepositoryStub, *testhelpers.GatewayStub) {
	refunds := &testhelpers.RefundRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}
	orders := NewOrderUseCase(&testhelpers.OrderRepositoryStub{Orders: []model.Order{order}}, gateway, discardLogger())
	uc := NewRefundUseCase(refunds, orders, gateway, discardLogger())
	uc.newRef = func() string { return "ref-1" }
	return uc, refunds, gateway
}

func TestRefundUseCaseRequest(t *testing.T) {
	order := paidOrder(model.OrderStatusProcessing)
	uc, refunds, _ := newRefundFixture(order)

	refund, err := uc.Request(context.Background(), 7, order.Number, " barang rusak ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refund.Status != model.RefundStatusPending || refund.Amount != 150000 || refund.Reason != "barang rusak" {
		t.Fatalf("unexpected refund %+v", refund)
	}
	if len(refunds.Refunds) != 1 {
		t.Fatalf("expected refund stored")
	}
}

func TestRefundUseCaseRequestRejections(t *testing.T) {
	unpaid := orderWith(11, 7, model.OrderStatusWaitingPayment)
	shipping := paidOrder(model.OrderStatusShipping)

	for name, order := range map[string]model.Order{"unpaid": unpaid, "shipping": shipping} {
		uc, _, _ := newRefundFixture(order)
		if _, err := uc.Request(context.Background(), 7, order.Number, "alasan"); !errors.Is(err, domainErrors.ErrRefundNotAllowed) {
			t.Fatalf("%s: expected refund not allowed, got %v", name, err)
		}
	}

	processing := paidOrder(model.OrderStatusProcessing)
	uc, _, _ := newRefundFixture(processing)
	if _, err := uc.Request(context.Background(), 7, processing.Number, "  "); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty reason, got %v", err)
	}
}

func TestRefundUseCaseRequestInProgress(t *testing.T) {
	order := paidOrder(model.OrderStatusPaymentReceived)
	uc, refunds, _ := newRefundFixture(order)
	refunds.CreateFn = func(context.Context, model.Refund) (*model.Refund, error) {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, err := uc.Request(context.Background(), 7, order.Number, "alasan"); !errors.Is(err, domainErrors.ErrRefundInProgress) {
		t.Fatalf("expected refund in progress, got %v", err)
	}
}

func TestRefundUseCaseApprove(t *testing.T) {
	order := paidOrder(model.OrderStatusProcessing)
	uc, refunds, gateway := newRefundFixture(order)
	created, err := uc.Request(context.Background(), 7, order.Number, "salah ukuran")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	refund, err := uc.Approve(context.Background(), created.ID, "ok")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if refund.Status != model.RefundStatusApproved || refund.Reference != "ref-1" || refund.ExternalID != "rfd-ref-1" {
		t.Fatalf("unexpected refund %+v", refund)
	}
	if len(gateway.Refunds) != 1 {
		t.Fatalf("expected gateway refund submitted")
	}
	sent := gateway.Refunds[0]
	if sent.InvoiceID != "inv-1" || sent.Amount != 150000 || sent.ReferenceID != "ref-1" {
		t.Fatalf("unexpected gateway request %+v", sent)
	}
	if refunds.Refunds[created.ID].ExternalID != "rfd-ref-1" {
		t.Fatalf("expected external id persisted")
	}

	if _, err := uc.Approve(context.Background(), created.ID, ""); !errors.Is(err, domainErrors.ErrRefundNotAllowed) {
		t.Fatalf("expected second approval rejected, got %v", err)
	}
}

func TestRefundUseCaseApproveGatewayFailure(t *testing.T) {
	order := paidOrder(model.OrderStatusProcessing)
	uc, refunds, gateway := newRefundFixture(order)
	gateway.CreateRefundFn = func(context.Context, model.RefundRequest) (*model.RefundReceipt, error) {
		return nil, errors.New("refund channel down")
	}
	created, err := uc.Request(context.Background(), 7, order.Number, "salah ukuran")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	refund, err := uc.Approve(context.Background(), created.ID, "")
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if refund.Status != model.RefundStatusFailed || refund.FailureReason == "" {
		t.Fatalf("expected failed refund, got %+v", refund)
	}
	if refunds.Failed[created.ID] != "SUBMIT_FAILED" {
		t.Fatalf("expected refund marked failed")
	}
}

func TestRefundUseCaseReject(t *testing.T) {
	order := paidOrder(model.OrderStatusProcessing)
	uc, _, gateway := newRefundFixture(order)
	created, err := uc.Request(context.Background(), 7, order.Number, "berubah pikiran")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if _, err := uc.Reject(context.Background(), created.ID, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected note required, got %v", err)
	}
	refund, err := uc.Reject(context.Background(), created.ID, "di luar kebijakan")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if refund.Status != model.RefundStatusRejected {
		t.Fatalf("unexpected status %s", refund.Status)
	}
	if len(gateway.Refunds) != 0 {
		t.Fatalf("rejected refund must not reach the gateway")
	}
}

func TestRefundUseCaseApproveRejectsFulfilledOrders(t *testing.T) {
	for _, status := range []model.OrderStatus{model.OrderStatusShipping, model.OrderStatusCompleted} {
		order := paidOrder(status)
		uc, refunds, gateway := newRefundFixture(order)
		refunds.Refunds = map[int64]*model.Refund{
			1: {ID: 1, PaymentID: order.Payment.ID, OrderID: order.ID, OrderNumber: order.Number, Amount: 150000, Status: model.RefundStatusPending},
		}

		if _, err := uc.Approve(context.Background(), 1, "ok"); !errors.Is(err, domainErrors.ErrRefundNotAllowed) {
			t.Fatalf("%s: expected refund not allowed, got %v", status, err)
		}
		if refunds.Refunds[1].Status != model.RefundStatusPending {
			t.Fatalf("%s: refund must stay pending, got %s", status, refunds.Refunds[1].Status)
		}
		if len(gateway.Refunds) != 0 {
			t.Fatalf("%s: refund must not reach the gateway", status)
		}
	}
}

func TestRefundUseCaseOpenRefundHoldsShipment(t *testing.T) {
	order := paidOrder(model.OrderStatusProcessing)
	orderRepo := &testhelpers.OrderRepositoryStub{Orders: []model.Order{order}, OpenRefunds: map[int64]bool{}}
	gateway := &testhelpers.GatewayStub{}
	orders := NewOrderUseCase(orderRepo, gateway, discardLogger())
	uc := NewRefundUseCase(&testhelpers.RefundRepositoryStub{}, orders, gateway, discardLogger())
	uc.newRef = func() string { return "ref-1" }

	created, err := uc.Request(context.Background(), 7, order.Number, "salah ukuran")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	orderRepo.OpenRefunds[order.ID] = created.Status.Active()

	if err := orders.UpdateStatus(context.Background(), order.Number, model.OrderStatusShipping, "JNE123"); !errors.Is(err, domainErrors.ErrRefundInProgress) {
		t.Fatalf("expected shipment blocked by open refund, got %v", err)
	}

	refund, err := uc.Approve(context.Background(), created.ID, "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if refund.Status != model.RefundStatusApproved {
		t.Fatalf("unexpected refund %+v", refund)
	}
}
