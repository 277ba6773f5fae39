package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/gophershop/internal/adapter/xendit"
	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	StalePayments(ctx context.Context, limit int) ([]model.Payment, error)
	FetchInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error)
	HandleInvoice(ctx context.Context, invoice model.Invoice) error
}

// PaymentReconciler polls the gateway for unpaid payments whose invoice
// expired and applies the outcome a missed callback would have delivered.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs reconciler worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	payments, err := p.facade.StalePayments(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- payment:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, payment)
		}
	}
}

func (p *PaymentReconciler) handlePayment(ctx context.Context, payment model.Payment) {
	invoice, err := p.facade.FetchInvoice(ctx, payment.InvoiceID)
	if err != nil {
		if retryAfter, ok := xendit.IsRateLimited(err); ok {
			p.logger.Warn("xendit rate limited", slog.Duration("retry_after", retryAfter))
			sleep(ctx, retryAfter)
			return
		}
		p.logger.Error("invoice fetch failed",
			slog.String("order", payment.ExternalID),
			slog.String("invoice", payment.InvoiceID),
			slog.String("error", err.Error()),
		)
		return
	}

	if invoice.Status == model.InvoiceStatusPending {
		return
	}
	if invoice.ExternalID == "" {
		invoice.ExternalID = payment.ExternalID
	}

	if err := p.facade.HandleInvoice(ctx, *invoice); err != nil {
		if errors.Is(err, domainErrors.ErrPaymentAlreadyProcessed) {
			return
		}
		p.logger.Error("payment reconcile failed",
			slog.String("order", payment.ExternalID),
			slog.String("invoice_status", string(invoice.Status)),
			slog.String("error", err.Error()),
		)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
