package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/gophershop/internal/config"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/usecase"
)

// ShopFacade joins use cases behind the operations used by HTTP handlers and
// the payment reconciler.
type ShopFacade struct {
	auth     *usecase.AuthUseCase
	users    *usecase.UserUseCase
	catalog  *usecase.CatalogUseCase
	discount *usecase.DiscountUseCase
	cart     *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	refunds  *usecase.RefundUseCase
	payments *usecase.PaymentUseCase
	couriers []string
}

// FacadeParams lists use cases required by ShopFacade.
type FacadeParams struct {
	fx.In

	Config   *config.Config
	Auth     *usecase.AuthUseCase
	Users    *usecase.UserUseCase
	Catalog  *usecase.CatalogUseCase
	Discount *usecase.DiscountUseCase
	Cart     *usecase.CartUseCase
	Checkout *usecase.CheckoutUseCase
	Orders   *usecase.OrderUseCase
	Refunds  *usecase.RefundUseCase
	Payments *usecase.PaymentUseCase
}

// NewShopFacade constructs ShopFacade.
func NewShopFacade(p FacadeParams) *ShopFacade {
	var couriers []string
	if p.Config != nil {
		couriers = p.Config.Couriers()
	}
	return &ShopFacade{
		auth:     p.Auth,
		users:    p.Users,
		catalog:  p.Catalog,
		discount: p.Discount,
		cart:     p.Cart,
		checkout: p.Checkout,
		orders:   p.Orders,
		refunds:  p.Refunds,
		payments: p.Payments,
		couriers: couriers,
	}
}

func (f *ShopFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *ShopFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *ShopFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *ShopFacade) Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	return f.catalog.Products(ctx, filter)
}

func (f *ShopFacade) Product(ctx context.Context, slug string) (*model.Product, error) {
	return f.catalog.Product(ctx, slug)
}

func (f *ShopFacade) Cart(ctx context.Context, userID int64) (*model.CartSummary, error) {
	return f.cart.Summary(ctx, userID)
}

func (f *ShopFacade) AddToCart(ctx context.Context, userID, productID int64, variantID *int64, quantity int) error {
	return f.cart.AddItem(ctx, userID, productID, variantID, quantity)
}

func (f *ShopFacade) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	return f.cart.UpdateItem(ctx, userID, itemID, quantity)
}

func (f *ShopFacade) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	return f.cart.RemoveItem(ctx, userID, itemID)
}

func (f *ShopFacade) ApplyDiscount(ctx context.Context, userID int64, code string) (*model.CartSummary, error) {
	return f.cart.ApplyDiscount(ctx, userID, code)
}

func (f *ShopFacade) RemoveDiscount(ctx context.Context, userID int64) error {
	return f.cart.RemoveDiscount(ctx, userID)
}

// Couriers lists courier codes with a configured shipping rate.
func (f *ShopFacade) Couriers() []string {
	return f.couriers
}

func (f *ShopFacade) PreviewCheckout(ctx context.Context, userID int64, courier string) (*model.CheckoutQuote, error) {
	return f.checkout.Preview(ctx, userID, courier)
}

func (f *ShopFacade) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	return f.checkout.PlaceOrder(ctx, userID, req)
}

func (f *ShopFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *ShopFacade) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, number)
}

func (f *ShopFacade) CancelOrder(ctx context.Context, userID int64, number string) error {
	return f.orders.CancelForUser(ctx, userID, number)
}

func (f *ShopFacade) CompleteOrder(ctx context.Context, userID int64, number string) error {
	return f.orders.ConfirmReceived(ctx, userID, number)
}

func (f *ShopFacade) RequestRefund(ctx context.Context, userID int64, number, reason string) (*model.Refund, error) {
	return f.refunds.Request(ctx, userID, number, reason)
}

func (f *ShopFacade) HandleInvoice(ctx context.Context, invoice model.Invoice) error {
	return f.payments.HandleInvoice(ctx, invoice)
}

func (f *ShopFacade) HandleRefund(ctx context.Context, event model.RefundEvent) error {
	return f.payments.HandleRefund(ctx, event)
}

// StalePayments returns unpaid payments whose invoices should be rechecked.
func (f *ShopFacade) StalePayments(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.StalePayments(ctx, limit)
}

// FetchInvoice reads current invoice state from the gateway.
func (f *ShopFacade) FetchInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	return f.payments.FetchInvoice(ctx, invoiceID)
}

func (f *ShopFacade) Dashboard(ctx context.Context) (*model.OrderStats, error) {
	return f.orders.Stats(ctx)
}

func (f *ShopFacade) AdminProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	return f.catalog.AdminProducts(ctx, filter)
}

func (f *ShopFacade) AdminProduct(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.ProductByID(ctx, id)
}

func (f *ShopFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, product)
}

func (f *ShopFacade) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, product)
}

func (f *ShopFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *ShopFacade) CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	return f.catalog.CreateVariant(ctx, variant)
}

func (f *ShopFacade) UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	return f.catalog.UpdateVariant(ctx, variant)
}

func (f *ShopFacade) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	return f.catalog.DeleteVariant(ctx, productID, variantID)
}

func (f *ShopFacade) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name)
}

func (f *ShopFacade) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	return f.catalog.UpdateCategory(ctx, id, name)
}

func (f *ShopFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *ShopFacade) Discounts(ctx context.Context) ([]model.Discount, error) {
	return f.discount.List(ctx)
}

func (f *ShopFacade) Discount(ctx context.Context, id int64) (*model.Discount, error) {
	return f.discount.Get(ctx, id)
}

func (f *ShopFacade) CreateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	return f.discount.Create(ctx, discount)
}

func (f *ShopFacade) UpdateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	return f.discount.Update(ctx, discount)
}

func (f *ShopFacade) DeleteDiscount(ctx context.Context, id int64) error {
	return f.discount.Delete(ctx, id)
}

func (f *ShopFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *ShopFacade) SetUserRole(ctx context.Context, actorID, userID int64, role model.Role) error {
	return f.users.SetRole(ctx, actorID, userID, role)
}

func (f *ShopFacade) AdminOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	return f.orders.List(ctx, status)
}

func (f *ShopFacade) AdminOrder(ctx context.Context, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}

func (f *ShopFacade) UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus, trackingNumber string) error {
	return f.orders.UpdateStatus(ctx, number, status, trackingNumber)
}

func (f *ShopFacade) AdminCancelOrder(ctx context.Context, number string) error {
	return f.orders.Cancel(ctx, number)
}

func (f *ShopFacade) Refunds(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error) {
	return f.refunds.List(ctx, status)
}

func (f *ShopFacade) ApproveRefund(ctx context.Context, id int64, note string) (*model.Refund, error) {
	return f.refunds.Approve(ctx, id, note)
}

func (f *ShopFacade) RejectRefund(ctx context.Context, id int64, note string) (*model.Refund, error) {
	return f.refunds.Reject(ctx, id, note)
}

// EnsureAdmin creates or promotes the bootstrap administrator.
func (f *ShopFacade) EnsureAdmin(ctx context.Context, email, password string) (*model.User, error) {
	return f.auth.EnsureAdmin(ctx, email, password)
}
