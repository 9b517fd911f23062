package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/minhvn/solemart/internal/app"
	"github.com/minhvn/solemart/internal/config"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

func newRouter(facade *app.StoreFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	return Setup(facade, logger, cfg)
}
