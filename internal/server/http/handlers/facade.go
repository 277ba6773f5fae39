package handlers

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// CatalogFacade serves storefront browsing.
type CatalogFacade interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
	Product(ctx context.Context, slug string) (*model.Product, error)
}

// CartFacade manages the basket of the current user.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.CartSummary, error)
	AddToCart(ctx context.Context, userID, productID int64, variantID *int64, quantity int) error
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
	ApplyDiscount(ctx context.Context, userID int64, code string) (*model.CartSummary, error)
	RemoveDiscount(ctx context.Context, userID int64) error
}

// CheckoutFacade prices the cart and places orders.
type CheckoutFacade interface {
	Couriers() []string
	PreviewCheckout(ctx context.Context, userID int64, courier string) (*model.CheckoutQuote, error)
	Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, number string) (*model.Order, error)
	CancelOrder(ctx context.Context, userID int64, number string) error
	CompleteOrder(ctx context.Context, userID int64, number string) error
	RequestRefund(ctx context.Context, userID int64, number, reason string) (*model.Refund, error)
}

// WebhookFacade applies payment gateway callbacks.
type WebhookFacade interface {
	HandleInvoice(ctx context.Context, invoice model.Invoice) error
	HandleRefund(ctx context.Context, event model.RefundEvent) error
}

// AdminFacade exposes back-office operations.
type AdminFacade interface {
	Dashboard(ctx context.Context) (*model.OrderStats, error)

	AdminProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
	AdminProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID int64) error

	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	Discounts(ctx context.Context) ([]model.Discount, error)
	Discount(ctx context.Context, id int64) (*model.Discount, error)
	CreateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error)
	UpdateDiscount(ctx context.Context, discount model.Discount) (*model.Discount, error)
	DeleteDiscount(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]model.User, error)
	SetUserRole(ctx context.Context, actorID, userID int64, role model.Role) error

	AdminOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	AdminOrder(ctx context.Context, number string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus, trackingNumber string) error
	AdminCancelOrder(ctx context.Context, number string) error

	Refunds(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error)
	ApproveRefund(ctx context.Context, id int64, note string) (*model.Refund, error)
	RejectRefund(ctx context.Context, id int64, note string) (*model.Refund, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	OrderFacade
	WebhookFacade
	AdminFacade
}
