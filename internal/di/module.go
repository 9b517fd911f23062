package di

import (
	"go.uber.org/fx"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	"github.com/minhvn/solemart/internal/app"
	"github.com/minhvn/solemart/internal/config"
	"github.com/minhvn/solemart/internal/logger"
	"github.com/minhvn/solemart/internal/pkg/auth"
	"github.com/minhvn/solemart/internal/server/http/router"
	"github.com/minhvn/solemart/internal/storage/postgres"
	"github.com/minhvn/solemart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
