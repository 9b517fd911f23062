package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/minhvn/solemart/internal/config"
	"github.com/minhvn/solemart/internal/server/http/handlers"
	"github.com/minhvn/solemart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.POST("/cart/quote", cartHandler.Quote)
	api.POST("/discount/validate", cartHandler.ValidateDiscount)
	api.GET("/payment/return", paymentHandler.Return)

	order := api.Group("/order")
	order.Use(middleware.AuthRequired(facade))
	order.POST("", checkoutHandler.Create)
	order.GET("/myorders", orderHandler.List)
	order.GET("/detail/:id", orderHandler.Get)
	order.POST("/cancel/:id", orderHandler.Cancel)
	order.POST("/refund/:id", orderHandler.Refund)

	admin := order.Group("")
	admin.Use(middleware.AdminRequired())
	admin.PUT("/update/:id", adminHandler.Update)

	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	adminAPI.GET("/orders", adminHandler.List)

	return engine
}
