package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/gophershop/internal/adapter/xendit"
	"github.com/polkiloo/gophershop/internal/config"
	"github.com/polkiloo/gophershop/internal/server/http/handlers"
	"github.com/polkiloo/gophershop/internal/server/http/middleware"
)

// Params lists dependencies of the HTTP router.
type Params struct {
	fx.In

	Facade handlers.ShopFacade
	Health handlers.HealthChecker
	Config *config.Config
	Logger *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest(p.Config.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	facade := p.Facade
	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, p.Logger)
	adminHandler := handlers.NewAdminHandler(facade)

	engine.GET("/healthz", handlers.NewHealthHandler(p.Health).Check)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	api.GET("/categories", catalogHandler.Categories)
	api.GET("/products", catalogHandler.Products)
	api.GET("/products/:slug", catalogHandler.Product)

	webhooks := api.Group("/webhooks/xendit")
	webhooks.Use(middleware.RateLimit(p.Config.WebhookRateLimit, p.Config.WebhookBurst))
	webhooks.Use(middleware.CallbackToken(xendit.CallbackTokenHeader, p.Config.XenditCallbackToken))
	webhooks.POST("/invoice", webhookHandler.Invoice)
	webhooks.POST("/refund", webhookHandler.Refund)

	customer := api.Group("")
	customer.Use(middleware.AuthRequired(facade))
	customer.GET("/user/me", authHandler.Me)

	customer.GET("/cart", cartHandler.Get)
	customer.POST("/cart/items", cartHandler.AddItem)
	customer.PUT("/cart/items/:id", cartHandler.UpdateItem)
	customer.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	customer.POST("/cart/discount", cartHandler.ApplyDiscount)
	customer.DELETE("/cart/discount", cartHandler.RemoveDiscount)

	customer.GET("/checkout/couriers", checkoutHandler.Couriers)
	customer.GET("/checkout", checkoutHandler.Preview)
	customer.POST("/checkout", checkoutHandler.PlaceOrder)

	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:number", orderHandler.Get)
	customer.POST("/orders/:number/cancel", orderHandler.Cancel)
	customer.POST("/orders/:number/complete", orderHandler.Complete)
	customer.POST("/orders/:number/refund", orderHandler.RequestRefund)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired(facade))
	admin.GET("/dashboard", adminHandler.Dashboard)

	admin.GET("/products", adminHandler.Products)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.GET("/products/:id", adminHandler.Product)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.POST("/products/:id/variants", adminHandler.CreateVariant)
	admin.PUT("/products/:id/variants/:variantID", adminHandler.UpdateVariant)
	admin.DELETE("/products/:id/variants/:variantID", adminHandler.DeleteVariant)

	admin.GET("/categories", catalogHandler.Categories)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	admin.GET("/discounts", adminHandler.Discounts)
	admin.POST("/discounts", adminHandler.CreateDiscount)
	admin.GET("/discounts/:id", adminHandler.Discount)
	admin.PUT("/discounts/:id", adminHandler.UpdateDiscount)
	admin.DELETE("/discounts/:id", adminHandler.DeleteDiscount)

	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/role", adminHandler.SetUserRole)

	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/orders/:number", adminHandler.Order)
	admin.PUT("/orders/:number/status", adminHandler.UpdateOrderStatus)
	admin.POST("/orders/:number/cancel", adminHandler.CancelOrder)

	admin.GET("/refunds", adminHandler.Refunds)
	admin.POST("/refunds/:id/approve", adminHandler.ApproveRefund)
	admin.POST("/refunds/:id/reject", adminHandler.RejectRefund)

	return engine
}
