package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/gophershop/internal/adapter/xendit"
	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	testhelpers "github.com/polkiloo/gophershop/internal/test"
)

func waitHandled(t *testing.T, facade *testhelpers.WorkerFacadeStub, want int, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		facade.Lock()
		handled := len(facade.Handled)
		facade.Unlock()
		if handled >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d reconciled invoices, got %d", want, handled)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNewPaymentReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewPaymentReconciler(&testhelpers.WorkerFacadeStub{}, 0, 0, 0, logger)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
	if rec.pollInterval != time.Minute {
		t.Fatalf("expected minute poll interval, got %s", rec.pollInterval)
	}
}

func TestPaymentReconcilerAppliesExpiredInvoice(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{Batches: [][]model.Payment{{
		{ID: 1, ExternalID: "202406010000001", InvoiceID: "inv-1", Status: model.PaymentStatusUnpaid},
	}}}
	rec := NewPaymentReconciler(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	waitHandled(t, facade, 1, 500*time.Millisecond)
	rec.Stop()

	facade.Lock()
	defer facade.Unlock()
	invoice := facade.Handled[0]
	if invoice.Status != model.InvoiceStatusExpired {
		t.Fatalf("expected expired invoice, got %s", invoice.Status)
	}
	if invoice.ExternalID != "202406010000001" {
		t.Fatalf("expected external id taken from payment, got %q", invoice.ExternalID)
	}
}

func TestPaymentReconcilerSkipsPendingInvoices(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fetched := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Payment{{{ID: 1, ExternalID: "202406010000001", InvoiceID: "inv-1"}}},
		FetchFn: func(ctx context.Context, invoiceID string) (*model.Invoice, error) {
			atomic.AddInt32(&fetched, 1)
			return &model.Invoice{ID: invoiceID, Status: model.InvoiceStatusPending}, nil
		},
	}
	rec := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&fetched) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for invoice fetch")
		case <-time.After(5 * time.Millisecond):
		}
	}
	rec.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Handled) != 0 {
		t.Fatalf("expected pending invoice to be left alone, got %v", facade.Handled)
	}
}

func TestPaymentReconcilerHandlesRateLimiting(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	payment := model.Payment{ID: 1, ExternalID: "202406010000001", InvoiceID: "inv-1"}
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Payment{{payment}, {payment}},
		FetchFn: func(ctx context.Context, invoiceID string) (*model.Invoice, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, xendit.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			return &model.Invoice{ID: invoiceID, ExternalID: "202406010000001", Status: model.InvoiceStatusPaid}, nil
		},
	}

	rec := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	waitHandled(t, facade, 1, time.Second)
	rec.Stop()

	if got := atomic.LoadInt32(&attempts); got < 2 {
		t.Fatalf("expected retry after rate limit, got %d attempts", got)
	}
}

func TestPaymentReconcilerIgnoresProcessedPayments(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	facade := &testhelpers.WorkerFacadeStub{
		HandleFn: func(context.Context, model.Invoice) error { return domainErrors.ErrPaymentAlreadyProcessed },
	}
	rec := NewPaymentReconciler(facade, time.Minute, 1, 1, logger)

	rec.handlePayment(context.Background(), model.Payment{ExternalID: "202406010000001", InvoiceID: "inv-1"})
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %s", buf.String())
	}

	facade.HandleFn = func(context.Context, model.Invoice) error { return errors.New("db down") }
	rec.handlePayment(context.Background(), model.Payment{ExternalID: "202406010000001", InvoiceID: "inv-1"})
	if buf.Len() == 0 {
		t.Fatal("expected failure to be logged")
	}
}

func TestPaymentReconcilerLogsStaleQueryFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	facade := &testhelpers.WorkerFacadeStub{
		StaleFn: func(context.Context, int) ([]model.Payment, error) { return nil, errors.New("db down") },
	}
	rec := NewPaymentReconciler(facade, time.Minute, 1, 1, logger)

	rec.fetchAndDispatch(context.Background())
	if buf.Len() == 0 {
		t.Fatal("expected failure to be logged")
	}
}

func TestSleepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sleep(ctx, time.Hour)
	if time.Since(start) > time.Second {
		t.Fatal("expected sleep to return on canceled context")
	}
}
