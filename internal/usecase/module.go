package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gophershop/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewUserUseCase,
	NewCatalogUseCase,
	NewDiscountUseCase,
	NewCartUseCase,
	newCheckoutOptions,
	NewCheckoutUseCase,
	NewOrderUseCase,
	NewRefundUseCase,
	NewPaymentUseCase,
)

func newCheckoutOptions(cfg *config.Config) CheckoutOptions {
	return CheckoutOptions{
		MaxCartWeight:   cfg.MaxCartWeight,
		ShippingRates:   cfg.ShippingRates,
		InvoiceDuration: cfg.InvoiceDuration,
	}
}
