package test

import (
	"context"
	"sync"

	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/usecase"
)

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	QuoteFn    func(context.Context, []model.CartItem, model.ShippingMethod, string) (*model.CartTotals, error)
	DiscountFn func(context.Context, string, float64) (float64, error)
}

// QuoteCart delegates to provided function or returns fixed totals.
func (s CartFacadeStub) QuoteCart(ctx context.Context, items []model.CartItem, method model.ShippingMethod, discountCode string) (*model.CartTotals, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, items, method, discountCode)
	}
	return &model.CartTotals{Subtotal: 100, ShippingCost: 5, Total: 105}, nil
}

// ValidateDiscount returns configured discount amount.
func (s CartFacadeStub) ValidateDiscount(ctx context.Context, code string, subtotal float64) (float64, error) {
	if s.DiscountFn != nil {
		return s.DiscountFn(ctx, code, subtotal)
	}
	return 10, nil
}

// CheckoutFacadeStub simulates order placement.
type CheckoutFacadeStub struct {
	PlaceFn func(context.Context, int64, usecase.CheckoutInput) (*usecase.DispatchResult, error)
	Placed  []usecase.CheckoutInput
}

// PlaceOrder records the input and returns a created order by default.
func (s *CheckoutFacadeStub) PlaceOrder(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.DispatchResult, error) {
	s.Placed = append(s.Placed, in)
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, in)
	}
	return &usecase.DispatchResult{
		Kind:  usecase.DispatchOrder,
		Order: &model.Order{ID: 1, UserID: userID, OrderStatus: model.OrderStatusProcessing},
	}, nil
}

// PaymentFacadeStub simulates gateway callback settlement.
type PaymentFacadeStub struct {
	SettleFn func(context.Context, model.GatewayCallback) (*model.Settlement, error)
	Seen     []model.GatewayCallback
}

// SettlePayment records the callback and returns a successful settlement.
func (s *PaymentFacadeStub) SettlePayment(ctx context.Context, cb model.GatewayCallback) (*model.Settlement, error) {
	s.Seen = append(s.Seen, cb)
	if s.SettleFn != nil {
		return s.SettleFn(ctx, cb)
	}
	orderID := int64(1)
	return &model.Settlement{
		TransactionRef: cb.TransactionRef,
		Outcome:        model.SettlementSuccess,
		ResponseCode:   cb.ResponseCode,
		OrderID:        &orderID,
	}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn func(context.Context, int64, repository.OrderFilter) ([]model.Order, error)
	OrderFn  func(context.Context, int64, int64, bool) (*model.Order, error)
	CancelFn func(context.Context, int64, int64) error
	RefundFn func(context.Context, int64, int64) error
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, filter)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

// Order returns a single order for the requester.
func (s OrderFacadeStub) Order(ctx context.Context, orderID, requesterID int64, admin bool) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, requesterID, admin)
	}
	return &model.Order{ID: orderID, UserID: requesterID}, nil
}

// CancelOrder executes configured cancellation handler.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, userID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, userID)
	}
	return nil
}

// RequestRefund executes configured refund handler.
func (s OrderFacadeStub) RequestRefund(ctx context.Context, orderID, userID int64) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, orderID, userID)
	}
	return nil
}

// AdminFacadeStub provides controllable behaviour for admin endpoints.
type AdminFacadeStub struct {
	AllOrdersFn func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateFn    func(context.Context, int64, usecase.AdminOrderUpdate) error
	Updates     []usecase.AdminOrderUpdate
}

// AllOrders returns the configured order listing.
func (s *AdminFacadeStub) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1}}, nil
}

// UpdateOrder records update requests.
func (s *AdminFacadeStub) UpdateOrder(ctx context.Context, orderID int64, update usecase.AdminOrderUpdate) error {
	s.Updates = append(s.Updates, update)
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, update)
	}
	return nil
}

// WorkerFacadeStub mimics sweeper interactions with the store facade.
type WorkerFacadeStub struct {
	Batches   [][]model.PendingOrder
	ExpiredFn func(context.Context, int) ([]model.PendingOrder, error)
	DiscardFn func(context.Context, string) error

	mu        sync.Mutex
	callCount int
	Discarded []string
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// ExpiredPending returns batches from the configured queue.
func (s *WorkerFacadeStub) ExpiredPending(ctx context.Context, limit int) ([]model.PendingOrder, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callCount < len(s.Batches) {
		batch := s.Batches[s.callCount]
		s.callCount++
		return batch, nil
	}
	return nil, nil
}

// DiscardPending records discarded transaction refs.
func (s *WorkerFacadeStub) DiscardPending(ctx context.Context, transactionRef string) error {
	if s.DiscardFn != nil {
		return s.DiscardFn(ctx, transactionRef)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Discarded = append(s.Discarded, transactionRef)
	return nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	PaymentFacadeStub
	OrderFacadeStub
	AdminFacadeStub
}
