package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/gophershop/internal/config"
	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	testhelpers "github.com/polkiloo/gophershop/internal/test"
	"github.com/polkiloo/gophershop/internal/usecase"
)

type facadeDeps struct {
	users     *testhelpers.UserRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	discounts *testhelpers.DiscountRepositoryStub
	carts     *testhelpers.CartRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	payments  *testhelpers.PaymentRepositoryStub
	refunds   *testhelpers.RefundRepositoryStub
	gateway   *testhelpers.GatewayStub
}

func newFacade() (*ShopFacade, *facadeDeps) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	deps := &facadeDeps{
		users:     testhelpers.NewUserRepositoryStub(),
		products:  &testhelpers.ProductRepositoryStub{},
		discounts: &testhelpers.DiscountRepositoryStub{},
		carts:     &testhelpers.CartRepositoryStub{},
		orders:    &testhelpers.OrderRepositoryStub{},
		payments:  &testhelpers.PaymentRepositoryStub{},
		refunds:   &testhelpers.RefundRepositoryStub{},
		gateway:   &testhelpers.GatewayStub{},
	}
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}

	cart := usecase.NewCartUseCase(deps.carts, deps.products, deps.discounts)
	orders := usecase.NewOrderUseCase(deps.orders, deps.gateway, logger)
	facade := NewShopFacade(FacadeParams{
		Config:   &config.Config{ShippingRates: map[string]int64{"sicepat": 9000, "jne": 10000}},
		Auth:     usecase.NewAuthUseCase(deps.users, testhelpers.HasherStub{}, strategy),
		Users:    usecase.NewUserUseCase(deps.users),
		Catalog:  usecase.NewCatalogUseCase(&testhelpers.CategoryRepositoryStub{}, deps.products),
		Discount: usecase.NewDiscountUseCase(deps.discounts),
		Cart:     cart,
		Checkout: usecase.NewCheckoutUseCase(cart, deps.users, deps.orders, deps.gateway, usecase.CheckoutOptions{}, logger),
		Orders:   orders,
		Refunds:  usecase.NewRefundUseCase(deps.refunds, orders, deps.gateway, logger),
		Payments: usecase.NewPaymentUseCase(deps.payments, deps.refunds, deps.gateway, logger),
	})
	return facade, deps
}

func TestShopFacadeAuth(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()

	user, token, err := facade.Register(ctx, "Rina", "Rina@Example.com", "rahasia")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" || user.Email != "rina@example.com" {
		t.Fatalf("unexpected register result: user=%+v token=%q", user, token)
	}

	if _, _, err := facade.Authenticate(ctx, "rina@example.com", "salah"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	id, err := facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("unexpected parse result: id=%d err=%v", id, err)
	}

	loaded, err := facade.GetUser(ctx, user.ID)
	if err != nil || loaded.Name != "Rina" {
		t.Fatalf("unexpected user: %+v err=%v", loaded, err)
	}

	admin, err := facade.EnsureAdmin(ctx, "rina@example.com", "rahasia")
	if err != nil || !admin.IsAdmin() {
		t.Fatalf("expected promotion to admin, got %+v err=%v", admin, err)
	}
	if deps.users.ByID[user.ID].Role != model.RoleAdmin {
		t.Fatal("expected stored role to change")
	}

	users, err := facade.Users(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("unexpected users: %v err=%v", users, err)
	}
}

func TestShopFacadeCouriers(t *testing.T) {
	facade, _ := newFacade()
	couriers := facade.Couriers()
	if len(couriers) != 2 || couriers[0] != "jne" || couriers[1] != "sicepat" {
		t.Fatalf("unexpected couriers %v", couriers)
	}

	empty := NewShopFacade(FacadeParams{})
	if len(empty.Couriers()) != 0 {
		t.Fatal("expected no couriers without config")
	}
}

func TestShopFacadeCart(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()

	summary, err := facade.Cart(ctx, 7)
	if err != nil {
		t.Fatalf("cart returned error: %v", err)
	}
	if summary.Total != 0 || len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", summary)
	}

	if err := facade.UpdateCartItem(ctx, 7, 3, 0); err == nil {
		t.Fatal("expected zero quantity to be rejected")
	}
	if err := facade.RemoveCartItem(ctx, 7, 3); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if len(deps.carts.Removed) != 1 || deps.carts.Removed[0] != 3 {
		t.Fatalf("expected removal to reach repository, got %v", deps.carts.Removed)
	}
	if err := facade.RemoveDiscount(ctx, 7); err != nil {
		t.Fatalf("remove discount returned error: %v", err)
	}
}

func TestShopFacadeOrders(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()
	number := usecase.GenerateOrderNumber(time.Now())
	deps.orders.Orders = []model.Order{{
		ID:      5,
		Number:  number,
		UserID:  7,
		Status:  model.OrderStatusWaitingPayment,
		Payment: &model.Payment{InvoiceID: "inv-5"},
	}}

	listed, err := facade.Orders(ctx, 7)
	if err != nil || len(listed) != 1 {
		t.Fatalf("unexpected orders: %v err=%v", listed, err)
	}

	if _, err := facade.Order(ctx, 8, number); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected foreign order to be hidden, got %v", err)
	}

	if err := facade.CancelOrder(ctx, 7, number); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if len(deps.orders.Canceled) != 1 || deps.orders.Canceled[0] != 5 {
		t.Fatalf("expected order 5 canceled, got %v", deps.orders.Canceled)
	}
	if len(deps.gateway.Expired) != 1 || deps.gateway.Expired[0] != "inv-5" {
		t.Fatalf("expected invoice expiry, got %v", deps.gateway.Expired)
	}

	if err := facade.CompleteOrder(ctx, 7, number); !errors.Is(err, domainErrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected unshipped order to stay open, got %v", err)
	}

	stats, err := facade.Dashboard(ctx)
	if err != nil || stats == nil {
		t.Fatalf("unexpected stats: %v err=%v", stats, err)
	}

	if _, err := facade.AdminOrder(ctx, number); err != nil {
		t.Fatalf("admin order returned error: %v", err)
	}
	status := model.OrderStatusWaitingPayment
	if _, err := facade.AdminOrders(ctx, &status); err != nil {
		t.Fatalf("admin orders returned error: %v", err)
	}
	if deps.orders.LastFilter == nil || *deps.orders.LastFilter != status {
		t.Fatalf("expected status filter to pass through, got %v", deps.orders.LastFilter)
	}
}

func TestShopFacadePayments(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()
	deps.payments.Payments = map[string]*model.Payment{
		"202406010000001": {ID: 1, OrderID: 5, ExternalID: "202406010000001", Status: model.PaymentStatusUnpaid},
	}
	deps.payments.Orders = map[int64]*model.Order{5: {ID: 5, Status: model.OrderStatusWaitingPayment}}
	deps.payments.Stale = []model.Payment{{ID: 1}, {ID: 2}}

	err := facade.HandleInvoice(ctx, model.Invoice{ExternalID: "202406010000001", Status: "paid"})
	if err != nil {
		t.Fatalf("handle invoice returned error: %v", err)
	}
	if deps.payments.Orders[5].Status != model.OrderStatusPaymentReceived {
		t.Fatalf("expected order to be paid, got %s", deps.payments.Orders[5].Status)
	}

	err = facade.HandleInvoice(ctx, model.Invoice{ExternalID: "202406010000001", Status: model.InvoiceStatusExpired})
	if !errors.Is(err, domainErrors.ErrPaymentAlreadyProcessed) {
		t.Fatalf("expected duplicate callback to be rejected, got %v", err)
	}

	if err := facade.HandleRefund(ctx, model.RefundEvent{ReferenceID: "missing"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected unknown refund, got %v", err)
	}

	stale, err := facade.StalePayments(ctx, 1)
	if err != nil || len(stale) != 1 {
		t.Fatalf("unexpected stale payments: %v err=%v", stale, err)
	}

	invoice, err := facade.FetchInvoice(ctx, "inv-1")
	if err != nil || invoice.ID != "inv-1" {
		t.Fatalf("unexpected invoice: %+v err=%v", invoice, err)
	}
}

func TestShopFacadeRefunds(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()
	deps.refunds.Refunds = map[int64]*model.Refund{
		1: {ID: 1, Status: model.RefundStatusPending},
	}

	rejected, err := facade.RejectRefund(ctx, 1, "barang sudah dipakai")
	if err != nil || rejected.Status != model.RefundStatusRejected {
		t.Fatalf("unexpected reject result: %+v err=%v", rejected, err)
	}

	status := model.RefundStatusRejected
	listed, err := facade.Refunds(ctx, &status)
	if err != nil || len(listed) != 1 {
		t.Fatalf("unexpected refunds: %v err=%v", listed, err)
	}
}

func TestShopFacadeCatalog(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()

	if _, err := facade.Categories(ctx); err != nil {
		t.Fatalf("categories returned error: %v", err)
	}
	category, err := facade.CreateCategory(ctx, "Kopi Nusantara")
	if err != nil || category.Slug != "kopi-nusantara" {
		t.Fatalf("unexpected category: %+v err=%v", category, err)
	}

	if _, err := facade.Products(ctx, model.ProductFilter{Search: "kopi"}); err != nil {
		t.Fatalf("products returned error: %v", err)
	}
	if deps.products.LastFilter.Search != "kopi" {
		t.Fatalf("expected filter to reach repository, got %+v", deps.products.LastFilter)
	}

	if err := facade.DeleteDiscount(ctx, 3); err != nil {
		t.Fatalf("delete discount returned error: %v", err)
	}
}
