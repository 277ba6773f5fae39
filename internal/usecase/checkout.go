package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// CheckoutOptions configures pricing and invoicing at checkout.
type CheckoutOptions struct {
	MaxCartWeight   int
	ShippingRates   map[string]int64
	InvoiceDuration time.Duration
}

// CheckoutUseCase turns a cart into a placed order with a payment invoice.
type CheckoutUseCase struct {
	cart    *CartUseCase
	users   repository.UserRepository
	orders  repository.OrderRepository
	gateway PaymentGateway
	opts    CheckoutOptions
	logger  *slog.Logger
	now     func() time.Time
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(cart *CartUseCase, users repository.UserRepository, orders repository.OrderRepository, gateway PaymentGateway, opts CheckoutOptions, logger *slog.Logger) *CheckoutUseCase {
	if opts.MaxCartWeight <= 0 {
		opts.MaxCartWeight = DefaultMaxCartWeight
	}
	if opts.InvoiceDuration <= 0 {
		opts.InvoiceDuration = 24 * time.Hour
	}
	return &CheckoutUseCase{
		cart:    cart,
		users:   users,
		orders:  orders,
		gateway: gateway,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Preview prices the cart for a courier after running the checkout gate.
func (u *CheckoutUseCase) Preview(ctx context.Context, userID int64, courier string) (*model.CheckoutQuote, error) {
	summary, err := u.cart.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := CheckEligibility(*summary, u.opts.MaxCartWeight); err != nil {
		return nil, err
	}

	courier = strings.ToLower(strings.TrimSpace(courier))
	rate, ok := u.opts.ShippingRates[courier]
	if !ok {
		return nil, domainErrors.ErrUnknownCourier
	}

	shipping := ShippingCost(summary.TotalWeight, rate)
	return &model.CheckoutQuote{
		Summary:      *summary,
		Courier:      courier,
		ShippingCost: shipping,
		GrandTotal:   summary.Total + shipping,
	}, nil
}

func validAddress(a model.ShippingAddress) bool {
	return strings.TrimSpace(a.RecipientName) != "" &&
		strings.TrimSpace(a.Phone) != "" &&
		strings.TrimSpace(a.Address) != "" &&
		strings.TrimSpace(a.City) != ""
}

// PlaceOrder creates the gateway invoice and persists the order atomically.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	if !validAddress(req.Address) {
		return nil, domainErrors.ErrInvalidInput
	}

	quote, err := u.Preview(ctx, userID, req.Courier)
	if err != nil {
		return nil, err
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	number := GenerateOrderNumber(now)
	order := buildOrder(number, userID, quote, req)

	items := make([]model.InvoiceItem, 0, len(order.Details))
	for _, d := range order.Details {
		items = append(items, model.InvoiceItem{Name: detailName(d), Quantity: d.Quantity, Price: d.Price})
	}

	invoice, err := u.gateway.CreateInvoice(ctx, model.InvoiceRequest{
		ExternalID:  number,
		Amount:      quote.GrandTotal,
		PayerEmail:  user.Email,
		Description: fmt.Sprintf("Pembayaran pesanan %s", number),
		Items:       items,
		Duration:    u.opts.InvoiceDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	expiresAt := invoice.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(u.opts.InvoiceDuration)
	}

	placed, err := u.orders.Place(ctx, model.OrderDraft{
		Order: order,
		Payment: model.Payment{
			ExternalID: number,
			InvoiceID:  invoice.ID,
			InvoiceURL: invoice.InvoiceURL,
			Amount:     quote.GrandTotal,
			Status:     model.PaymentStatusUnpaid,
			ExpiresAt:  expiresAt,
		},
		CartID: quote.Summary.CartID,
	})
	if err != nil {
		if expireErr := u.gateway.ExpireInvoice(ctx, invoice.ID); expireErr != nil {
			u.logger.Warn("expire orphan invoice failed",
				slog.String("order", number),
				slog.String("invoice", invoice.ID),
				slog.String("error", expireErr.Error()),
			)
		}
		return nil, err
	}

	u.logger.Info("order placed", slog.String("order", placed.Number), slog.Int64("total", placed.Total))
	return placed, nil
}

func buildOrder(number string, userID int64, quote *model.CheckoutQuote, req model.CheckoutRequest) model.Order {
	summary := quote.Summary
	order := model.Order{
		Number:         number,
		UserID:         userID,
		Status:         model.OrderStatusWaitingPayment,
		Subtotal:       summary.Subtotal,
		DiscountAmount: summary.DiscountAmount,
		ShippingCost:   quote.ShippingCost,
		Total:          quote.GrandTotal,
		TotalWeight:    summary.TotalWeight,
		Courier:        quote.Courier,
		Address:        req.Address,
		Note:           strings.TrimSpace(req.Note),
		Details:        make([]model.OrderDetail, 0, len(summary.Items)),
	}
	if summary.Discount != nil {
		id := summary.Discount.ID
		order.DiscountID = &id
	}
	for _, item := range summary.Items {
		order.Details = append(order.Details, model.OrderDetail{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			Subtotal:    item.Subtotal(),
		})
	}
	return order
}

func detailName(d model.OrderDetail) string {
	if d.VariantName == "" {
		return d.ProductName
	}
	return d.ProductName + " - " + d.VariantName
}
