package handlers

import (
	"context"

	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, bool, error)
}

// CartFacade prices carts and validates discount codes.
type CartFacade interface {
	QuoteCart(ctx context.Context, items []model.CartItem, method model.ShippingMethod, discountCode string) (*model.CartTotals, error)
	ValidateDiscount(ctx context.Context, code string, subtotal float64) (float64, error)
}

// CheckoutFacade places orders.
type CheckoutFacade interface {
	PlaceOrder(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.DispatchResult, error)
}

// PaymentFacade settles gateway return callbacks.
type PaymentFacade interface {
	SettlePayment(ctx context.Context, cb model.GatewayCallback) (*model.Settlement, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, orderID, requesterID int64, admin bool) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, userID int64) error
	RequestRefund(ctx context.Context, orderID, userID int64) error
}

// AdminFacade encapsulates administrative order operations.
type AdminFacade interface {
	AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, update usecase.AdminOrderUpdate) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CartFacade
	CheckoutFacade
	PaymentFacade
	OrderFacade
	AdminFacade
}
