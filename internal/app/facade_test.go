package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	testhelpers "github.com/minhvn/solemart/internal/test"
	"github.com/minhvn/solemart/internal/usecase"
)

type facadeFixture struct {
	facade      *StoreFacade
	users       *testhelpers.UserRepositoryStub
	orders      *testhelpers.OrderRepositoryStub
	pending     *testhelpers.PendingOrderRepositoryStub
	settlements *testhelpers.SettlementRepositoryStub
	gateway     *testhelpers.GatewayClientStub
}

func newFacade() facadeFixture {
	now := func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, bool, error) { return 99, true, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	discounts := &testhelpers.DiscountRepositoryStub{}
	cartUC := usecase.NewCartUseCase(discounts, 500, now)

	orders := &testhelpers.OrderRepositoryStub{}
	pending := testhelpers.NewPendingOrderRepositoryStub()
	gw := &testhelpers.GatewayClientStub{URL: "https://pay.example/x"}
	checkoutUC := usecase.NewCheckoutUseCase(cartUC, orders, pending, gw, 45*time.Minute, now)

	settlements := testhelpers.NewSettlementRepositoryStub()
	reconcileUC := usecase.NewReconcileUseCase(orders, pending, settlements, logger, now)

	ordersUC := usecase.NewOrdersUseCase(orders, 14*24*time.Hour, now)

	return facadeFixture{
		facade:      NewStoreFacade(authUC, cartUC, checkoutUC, reconcileUC, ordersUC),
		users:       users,
		orders:      orders,
		pending:     pending,
		settlements: settlements,
		gateway:     gw,
	}
}

func validInput(method model.PaymentMethod) usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Items: []model.CartItem{{ProductID: "sku-1", Quantity: 2, UnitPrice: 100}},
		ShippingAddress: model.Address{
			HouseNumber: "12", Street: "Nguyen Trai", Ward: "Ward 4",
			District: "District 5", City: "Ho Chi Minh City", Phone: "0912345678",
		},
		ShippingMethod: model.ShippingStandard,
		PaymentMethod:  method,
	}
}

func TestStoreFacadeAuth(t *testing.T) {
	fx := newFacade()
	token, err := fx.facade.Register(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	if _, err := fx.users.GetByLogin(context.Background(), "user"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	if _, err := fx.facade.Authenticate(context.Background(), "user", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, admin, err := fx.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 || !admin {
		t.Fatalf("expected admin id 99, got %d admin=%v", id, admin)
	}
}

func TestStoreFacadeQuoteAndCheckout(t *testing.T) {
	fx := newFacade()

	totals, err := fx.facade.QuoteCart(context.Background(), validInput(model.PaymentMethodCOD).Items, model.ShippingStandard, "")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if totals.Total != 205 {
		t.Fatalf("expected total 205, got %v", totals.Total)
	}

	result, err := fx.facade.PlaceOrder(context.Background(), 7, validInput(model.PaymentMethodCOD))
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if result.Kind != usecase.DispatchOrder || result.Order == nil {
		t.Fatalf("expected created order, got %+v", result)
	}
	if result.Order.FinalAmount != 205 {
		t.Fatalf("expected server-side total 205, got %v", result.Order.FinalAmount)
	}
}

func TestStoreFacadeGatewayRoundTrip(t *testing.T) {
	fx := newFacade()

	result, err := fx.facade.PlaceOrder(context.Background(), 7, validInput(model.PaymentMethodGateway))
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if result.Kind != usecase.DispatchRedirect || result.PaymentURL == "" {
		t.Fatalf("expected redirect, got %+v", result)
	}

	settlement, err := fx.facade.SettlePayment(context.Background(), model.GatewayCallback{
		TransactionRef: "gw-1",
		ResponseCode:   "00",
		AmountMinor:    20500,
		OrderInfo:      "solemart order " + result.TransactionRef,
	})
	if err != nil {
		t.Fatalf("settle returned error: %v", err)
	}
	if settlement.Outcome != model.SettlementSuccess || settlement.OrderID == nil {
		t.Fatalf("expected settled order, got %+v", settlement)
	}
	if len(fx.orders.Created) != 1 {
		t.Fatalf("expected one order created, got %d", len(fx.orders.Created))
	}
}

func TestStoreFacadeOrderOperations(t *testing.T) {
	fx := newFacade()
	fx.orders.Orders = []model.Order{
		{ID: 1, UserID: 7, OrderStatus: model.OrderStatusProcessing},
		{ID: 2, UserID: 8, OrderStatus: model.OrderStatusProcessing},
	}

	listed, err := fx.facade.Orders(context.Background(), 7, repository.OrderFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one own order, got %v err=%v", listed, err)
	}

	all, err := fx.facade.AllOrders(context.Background(), repository.OrderFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected all orders, got %v err=%v", all, err)
	}

	if _, err := fx.facade.Order(context.Background(), 2, 7, false); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected foreign order hidden, got %v", err)
	}

	if err := fx.facade.CancelOrder(context.Background(), 1, 7); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if len(fx.orders.StatusCalls) != 1 {
		t.Fatalf("expected status update, got %+v", fx.orders.StatusCalls)
	}

	shipped := model.OrderStatusShipped
	if err := fx.facade.UpdateOrder(context.Background(), 2, usecase.AdminOrderUpdate{Status: &shipped}); err != nil {
		t.Fatalf("admin update returned error: %v", err)
	}
}

func TestStoreFacadeSweeperSurface(t *testing.T) {
	fx := newFacade()
	fx.pending.Pending["stale"] = &model.PendingOrder{
		TransactionRef: "stale",
		CreatedAt:      time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	expired, err := fx.facade.ExpiredPending(context.Background(), 10)
	if err != nil || len(expired) != 1 {
		t.Fatalf("expected one expired pending, got %v err=%v", expired, err)
	}

	if err := fx.facade.DiscardPending(context.Background(), "stale"); err != nil {
		t.Fatalf("discard returned error: %v", err)
	}
	if _, ok := fx.pending.Pending["stale"]; ok {
		t.Fatalf("expected pending removed")
	}
}
