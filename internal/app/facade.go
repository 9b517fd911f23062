package app

import (
	"context"

	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/usecase"
)

type StoreFacade struct {
	auth      *usecase.AuthUseCase
	cart      *usecase.CartUseCase
	checkout  *usecase.CheckoutUseCase
	reconcile *usecase.ReconcileUseCase
	orders    *usecase.OrdersUseCase
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	cart *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	reconcile *usecase.ReconcileUseCase,
	orders *usecase.OrdersUseCase,
) *StoreFacade {
	return &StoreFacade{auth: auth, cart: cart, checkout: checkout, reconcile: reconcile, orders: orders}
}

func (f *StoreFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, bool, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) QuoteCart(ctx context.Context, items []model.CartItem, method model.ShippingMethod, discountCode string) (*model.CartTotals, error) {
	return f.cart.Quote(ctx, items, method, discountCode)
}

func (f *StoreFacade) ValidateDiscount(ctx context.Context, code string, subtotal float64) (float64, error) {
	return f.cart.ValidateDiscount(ctx, code, subtotal)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.DispatchResult, error) {
	draft, err := f.checkout.Draft(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return f.checkout.Dispatch(ctx, draft, in.Card)
}

func (f *StoreFacade) SettlePayment(ctx context.Context, cb model.GatewayCallback) (*model.Settlement, error) {
	return f.reconcile.Settle(ctx, cb)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID, filter)
}

func (f *StoreFacade) Order(ctx context.Context, orderID, requesterID int64, admin bool) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, requesterID, admin)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, orderID, userID int64) error {
	return f.orders.Cancel(ctx, orderID, userID)
}

func (f *StoreFacade) RequestRefund(ctx context.Context, orderID, userID int64) error {
	return f.orders.RequestRefund(ctx, orderID, userID)
}

func (f *StoreFacade) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *StoreFacade) UpdateOrder(ctx context.Context, orderID int64, update usecase.AdminOrderUpdate) error {
	return f.orders.AdminUpdate(ctx, orderID, update)
}

func (f *StoreFacade) ExpiredPending(ctx context.Context, limit int) ([]model.PendingOrder, error) {
	return f.checkout.ExpiredPending(ctx, limit)
}

func (f *StoreFacade) DiscardPending(ctx context.Context, transactionRef string) error {
	return f.checkout.DiscardPending(ctx, transactionRef)
}
