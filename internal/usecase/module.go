package usecase

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	"github.com/minhvn/solemart/internal/config"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newCartUseCase,
	newCheckoutUseCase,
	newReconcileUseCase,
	newOrdersUseCase,
)

func newCartUseCase(discounts repository.DiscountRepository, cfg *config.Config) *CartUseCase {
	return NewCartUseCase(discounts, cfg.FreeShippingThreshold, time.Now)
}

func newCheckoutUseCase(
	cart *CartUseCase,
	orders repository.OrderRepository,
	pending repository.PendingOrderRepository,
	gw gateway.Client,
	cfg *config.Config,
) *CheckoutUseCase {
	return NewCheckoutUseCase(cart, orders, pending, gw, cfg.PendingOrderTTL, time.Now)
}

func newReconcileUseCase(
	orders repository.OrderRepository,
	pending repository.PendingOrderRepository,
	settlements repository.SettlementRepository,
	logger *slog.Logger,
) *ReconcileUseCase {
	return NewReconcileUseCase(orders, pending, settlements, logger, time.Now)
}

func newOrdersUseCase(orders repository.OrderRepository, cfg *config.Config) *OrdersUseCase {
	return NewOrdersUseCase(orders, cfg.RefundWindow, time.Now)
}
