package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gophershop/internal/adapter/xendit"
	"github.com/polkiloo/gophershop/internal/app"
	"github.com/polkiloo/gophershop/internal/config"
	"github.com/polkiloo/gophershop/internal/logger"
	"github.com/polkiloo/gophershop/internal/pkg/auth"
	"github.com/polkiloo/gophershop/internal/server/http/handlers"
	"github.com/polkiloo/gophershop/internal/server/http/router"
	"github.com/polkiloo/gophershop/internal/storage/postgres"
	"github.com/polkiloo/gophershop/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		xendit.Module,
		usecase.Module,
		fx.Provide(func(c *xendit.Client) usecase.PaymentGateway { return c }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
