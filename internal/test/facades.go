package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// CatalogFacadeStub serves storefront data for handler tests.
type CatalogFacadeStub struct {
	CategoriesFn func(context.Context) ([]model.Category, error)
	ProductsFn   func(context.Context, model.ProductFilter) (*model.ProductPage, error)
	ProductFn    func(context.Context, string) (*model.Product, error)
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Pakaian", Slug: "pakaian"}}, nil
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return &model.ProductPage{Page: 1, PerPage: 12}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, slug string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, slug)
	}
	return &model.Product{ID: 1, Slug: slug, Name: "Kaos Polos", Price: 75000, IsActive: true}, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	CartFn           func(context.Context, int64) (*model.CartSummary, error)
	AddFn            func(context.Context, int64, int64, *int64, int) error
	UpdateFn         func(context.Context, int64, int64, int) error
	RemoveFn         func(context.Context, int64, int64) error
	ApplyDiscountFn  func(context.Context, int64, string) (*model.CartSummary, error)
	RemoveDiscountFn func(context.Context, int64) error
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.CartSummary, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.CartSummary{CartID: userID}, nil
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64, variantID *int64, quantity int) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, variantID, quantity)
	}
	return nil
}

func (s CartFacadeStub) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, itemID, quantity)
	}
	return nil
}

func (s CartFacadeStub) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return nil
}

func (s CartFacadeStub) ApplyDiscount(ctx context.Context, userID int64, code string) (*model.CartSummary, error) {
	if s.ApplyDiscountFn != nil {
		return s.ApplyDiscountFn(ctx, userID, code)
	}
	return &model.CartSummary{CartID: userID, Discount: &model.Discount{Code: code}}, nil
}

func (s CartFacadeStub) RemoveDiscount(ctx context.Context, userID int64) error {
	if s.RemoveDiscountFn != nil {
		return s.RemoveDiscountFn(ctx, userID)
	}
	return nil
}

// CheckoutFacadeStub simulates checkout.
type CheckoutFacadeStub struct {
	CouriersVal []string
	PreviewFn   func(context.Context, int64, string) (*model.CheckoutQuote, error)
	CheckoutFn  func(context.Context, int64, model.CheckoutRequest) (*model.Order, error)
}

func (s CheckoutFacadeStub) Couriers() []string {
	if s.CouriersVal != nil {
		return s.CouriersVal
	}
	return []string{"jne", "sicepat"}
}

func (s CheckoutFacadeStub) PreviewCheckout(ctx context.Context, userID int64, courier string) (*model.CheckoutQuote, error) {
	if s.PreviewFn != nil {
		return s.PreviewFn(ctx, userID, courier)
	}
	return &model.CheckoutQuote{Courier: courier}, nil
}

func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, req)
	}
	return &model.Order{
		ID:      1,
		Number:  "202406010000001",
		UserID:  userID,
		Status:  model.OrderStatusWaitingPayment,
		Courier: req.Courier,
		Payment: &model.Payment{InvoiceURL: "https://checkout.xendit.co/web/inv-1", Status: model.PaymentStatusUnpaid},
	}, nil
}

// OrderFacadeStub provides controllable behaviour for customer order endpoints.
type OrderFacadeStub struct {
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, string) (*model.Order, error)
	CancelFn   func(context.Context, int64, string) error
	CompleteFn func(context.Context, int64, string) error
	RefundFn   func(context.Context, int64, string, string) (*model.Refund, error)
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: "202406010000001", UserID: userID, Status: model.OrderStatusWaitingPayment}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, number)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusWaitingPayment}, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID int64, number string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, number)
	}
	return nil
}

func (s OrderFacadeStub) CompleteOrder(ctx context.Context, userID int64, number string) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, userID, number)
	}
	return nil
}

func (s OrderFacadeStub) RequestRefund(ctx context.Context, userID int64, number, reason string) (*model.Refund, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, userID, number, reason)
	}
	return &model.Refund{ID: 1, OrderNumber: number, Reason: reason, Status: model.RefundStatusPending}, nil
}

// WebhookFacadeStub records gateway callbacks.
type WebhookFacadeStub struct {
	InvoiceFn func(context.Context, model.Invoice) error
	RefundFn  func(context.Context, model.RefundEvent) error
}

func (s WebhookFacadeStub) HandleInvoice(ctx context.Context, invoice model.Invoice) error {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, invoice)
	}
	return nil
}

func (s WebhookFacadeStub) HandleRefund(ctx context.Context, event model.RefundEvent) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, event)
	}
	return nil
}

// AdminFacadeStub simulates back-office operations. Unset functions succeed
// and echo their input.
type AdminFacadeStub struct {
	DashboardFn      func(context.Context) (*model.OrderStats, error)
	ProductsFn       func(context.Context, model.ProductFilter) (*model.ProductPage, error)
	ProductFn        func(context.Context, int64) (*model.Product, error)
	CreateProductFn  func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn  func(context.Context, model.Product) (*model.Product, error)
	DeleteProductFn  func(context.Context, int64) error
	CreateVariantFn  func(context.Context, model.ProductVariant) (*model.ProductVariant, error)
	UpdateVariantFn  func(context.Context, model.ProductVariant) (*model.ProductVariant, error)
	DeleteVariantFn  func(context.Context, int64, int64) error
	CreateCategoryFn func(context.Context, string) (*model.Category, error)
	UpdateCategoryFn func(context.Context, int64, string) (*model.Category, error)
	DeleteCategoryFn func(context.Context, int64) error
	DiscountsFn      func(context.Context) ([]model.Discount, error)
	DiscountFn       func(context.Context, int64) (*model.Discount, error)
	CreateDiscountFn func(context.Context, model.Discount) (*model.Discount, error)
	UpdateDiscountFn func(context.Context, model.Discount) (*model.Discount, error)
	DeleteDiscountFn func(context.Context, int64) error
	UsersFn          func(context.Context) ([]model.User, error)
	SetRoleFn        func(context.Context, int64, int64, model.Role) error
	OrdersFn         func(context.Context, *model.OrderStatus) ([]model.Order, error)
	OrderFn          func(context.Context, string) (*model.Order, error)
	UpdateStatusFn   func(context.Context, string, model.OrderStatus, string) error
	CancelFn         func(context.Context, string) error
	RefundsFn        func(context.Context, *model.RefundStatus) ([]model.Refund, error)
	ApproveFn        func(context.Context, int64, string) (*model.Refund, error)
	RejectFn         func(context.Context, int64, string) (*model.Refund, error)
}

func (s AdminFacadeStub) Dashboard(ctx context.Context) (*model.OrderStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	return &model.OrderStats{ByStatus: map[model.OrderStatus]int{}}, nil
}

func (s AdminFacadeStub) AdminProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return &model.ProductPage{Page: 1, PerPage: 12}, nil
}

func (s AdminFacadeStub) AdminProduct(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

func (s AdminFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

func (s AdminFacadeStub) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return &product, nil
}

func (s AdminFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

func (s AdminFacadeStub) CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if s.CreateVariantFn != nil {
		return s.CreateVariantFn(ctx, variant)
	}
	variant.ID = 1
	return &variant, nil
}

func (s AdminFacadeStub) UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if s.UpdateVariantFn != nil {
		return s.UpdateVariantFn(ctx, variant)
	}
	return &variant, nil
}

func (s AdminFacadeStub) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	if s.DeleteVariantFn != nil {
		return s.DeleteVariantFn(ctx, productID, variantID)
	}
	return nil
}

func (s AdminFacadeStub) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name)
	}
	return &model.Category{ID: 1, Name: name}, nil
}

func (s AdminFacadeStub) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	if s.UpdateCategoryFn != nil {
		return s.UpdateCategoryFn(ctx, id, name)
	}
	return &model.Category{ID: id, Name: name}, nil
}

func (s AdminFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

func (s AdminFacadeStub) Discounts(ctx context.Context) ([]model.Discount, error) {
	if s.DiscountsFn != nil {
		return s.DiscountsFn(ctx)
	}
	return nil, nil
}

func (s AdminFacadeStub) Discount(ctx context.Context, id int64) (*model.Discount, error) {
	if s.DiscountFn != nil {
		return s.DiscountFn(ctx, id)
	}
	return &model.Discount{ID: id}, nil
}

func (s AdminFacadeStub) CreateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	if s.CreateDiscountFn != nil {
		return s.CreateDiscountFn(ctx, discount)
	}
	discount.ID = 1
	return &discount, nil
}

func (s AdminFacadeStub) UpdateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	if s.UpdateDiscountFn != nil {
		return s.UpdateDiscountFn(ctx, discount)
	}
	return &discount, nil
}

func (s AdminFacadeStub) DeleteDiscount(ctx context.Context, id int64) error {
	if s.DeleteDiscountFn != nil {
		return s.DeleteDiscountFn(ctx, id)
	}
	return nil
}

func (s AdminFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return nil, nil
}

func (s AdminFacadeStub) SetUserRole(ctx context.Context, actorID, userID int64, role model.Role) error {
	if s.SetRoleFn != nil {
		return s.SetRoleFn(ctx, actorID, userID, role)
	}
	return nil
}

func (s AdminFacadeStub) AdminOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status)
	}
	return nil, nil
}

func (s AdminFacadeStub) AdminOrder(ctx context.Context, number string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, number)
	}
	return &model.Order{Number: number}, nil
}

func (s AdminFacadeStub) UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus, trackingNumber string) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, number, status, trackingNumber)
	}
	return nil
}

func (s AdminFacadeStub) AdminCancelOrder(ctx context.Context, number string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, number)
	}
	return nil
}

func (s AdminFacadeStub) Refunds(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error) {
	if s.RefundsFn != nil {
		return s.RefundsFn(ctx, status)
	}
	return nil, nil
}

func (s AdminFacadeStub) ApproveRefund(ctx context.Context, id int64, note string) (*model.Refund, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id, note)
	}
	return &model.Refund{ID: id, Status: model.RefundStatusApproved, AdminNote: note}, nil
}

func (s AdminFacadeStub) RejectRefund(ctx context.Context, id int64, note string) (*model.Refund, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, id, note)
	}
	return &model.Refund{ID: id, Status: model.RefundStatusRejected, AdminNote: note}, nil
}

// ShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	OrderFacadeStub
	WebhookFacadeStub
	AdminFacadeStub
}

// WorkerFacadeStub mimics the reconciler's view of the application.
type WorkerFacadeStub struct {
	Batches   [][]model.Payment
	StaleFn   func(context.Context, int) ([]model.Payment, error)
	FetchFn   func(context.Context, string) (*model.Invoice, error)
	HandleFn  func(context.Context, model.Invoice) error
	Handled   []model.Invoice
	mu        sync.Mutex
	callCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// StalePayments returns batches from configured queue.
func (s *WorkerFacadeStub) StalePayments(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// FetchInvoice returns configured invoice or an expired one.
func (s *WorkerFacadeStub) FetchInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, invoiceID)
	}
	return &model.Invoice{ID: invoiceID, Status: model.InvoiceStatusExpired}, nil
}

// HandleInvoice records reconciled invoices.
func (s *WorkerFacadeStub) HandleInvoice(ctx context.Context, invoice model.Invoice) error {
	s.mu.Lock()
	s.Handled = append(s.Handled, invoice)
	s.mu.Unlock()
	if s.HandleFn != nil {
		return s.HandleFn(ctx, invoice)
	}
	return nil
}

// HealthCheckerStub reports the configured error.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns Err.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
