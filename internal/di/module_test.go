package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/gophershop/internal/app"
	"github.com/polkiloo/gophershop/internal/config"
	"github.com/polkiloo/gophershop/internal/domain/repository"
	"github.com/polkiloo/gophershop/internal/storage/postgres"
	"github.com/polkiloo/gophershop/internal/test"
	"github.com/polkiloo/gophershop/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		XenditAPIURL:        "http://localhost",
		XenditSecretKey:     "xnd_development_stub",
		XenditCallbackToken: "callback",
		JWTSecret:           "secret",
		AuthStrategy:        config.AuthStrategyHMAC,
		TokenTTL:            time.Hour,
		MaxCartWeight:       30000,
		ShippingRates:       map[string]int64{"jne": 10000},
		InvoiceDuration:     time.Hour,
		ReconcileInterval:   time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxPaymentsBatch:    1,
		WebhookRateLimit:    1,
		WebhookBurst:        1,
		MaxBodyBytes:        1024,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.ShopFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(test.NewUserRepositoryStub())),
			fx.Replace(repository.CategoryRepository(&test.CategoryRepositoryStub{})),
			fx.Replace(repository.ProductRepository(&test.ProductRepositoryStub{})),
			fx.Replace(repository.DiscountRepository(&test.DiscountRepositoryStub{})),
			fx.Replace(repository.CartRepository(&test.CartRepositoryStub{})),
			fx.Replace(repository.OrderRepository(&test.OrderRepositoryStub{})),
			fx.Replace(repository.PaymentRepository(&test.PaymentRepositoryStub{})),
			fx.Replace(repository.RefundRepository(&test.RefundRepositoryStub{})),
			fx.Replace(usecase.PaymentGateway(&test.GatewayStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected shop facade instance")
	}
	if got := facade.Couriers(); len(got) != 1 || got[0] != "jne" {
		t.Fatalf("unexpected couriers %v", got)
	}
}
