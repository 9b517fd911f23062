package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/pkg/card"
)

type stubOrderRepository struct {
	createFn func(context.Context, *model.OrderDraft) (*model.Order, error)
	drafts   []model.OrderDraft
}

func (s *stubOrderRepository) Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error) {
	s.drafts = append(s.drafts, *draft)
	if s.createFn != nil {
		return s.createFn(ctx, draft)
	}
	return &model.Order{ID: int64(len(s.drafts)), UserID: draft.UserID, PaymentStatus: draft.PaymentStatus, FinalAmount: draft.FinalAmount}, nil
}

func (s *stubOrderRepository) GetByID(context.Context, int64) (*model.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) ListByUser(context.Context, int64, repository.OrderFilter) ([]model.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) List(context.Context, repository.OrderFilter) ([]model.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) UpdateOrderStatus(context.Context, int64, model.OrderStatus, string, time.Time) error {
	panic("not implemented")
}

func (s *stubOrderRepository) UpdatePaymentStatus(context.Context, int64, model.PaymentStatus, string, time.Time) error {
	panic("not implemented")
}

func (s *stubOrderRepository) UpdateShipping(context.Context, int64, string, *model.Address, time.Time) error {
	panic("not implemented")
}

type stubPendingRepository struct {
	saved   map[string]*model.PendingOrder
	deleted []string

	saveFn   func(context.Context, *model.PendingOrder) error
	getFn    func(context.Context, string) (*model.PendingOrder, error)
	expired  []model.PendingOrder
	cutoffIn time.Time
}

func newStubPendingRepository() *stubPendingRepository {
	return &stubPendingRepository{saved: make(map[string]*model.PendingOrder)}
}

func (s *stubPendingRepository) Save(ctx context.Context, pending *model.PendingOrder) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, pending)
	}
	s.saved[pending.TransactionRef] = pending
	return nil
}

func (s *stubPendingRepository) Get(ctx context.Context, ref string) (*model.PendingOrder, error) {
	if s.getFn != nil {
		return s.getFn(ctx, ref)
	}
	if p, ok := s.saved[ref]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *stubPendingRepository) Delete(ctx context.Context, ref string) error {
	delete(s.saved, ref)
	s.deleted = append(s.deleted, ref)
	return nil
}

func (s *stubPendingRepository) SelectExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.PendingOrder, error) {
	s.cutoffIn = cutoff
	return s.expired, nil
}

type stubGatewayClient struct {
	requests []gateway.PaymentRequest
	url      string
	err      error
}

func (s *stubGatewayClient) CreatePaymentURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

var checkoutTestNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func validCheckoutInput(method model.PaymentMethod) CheckoutInput {
	return CheckoutInput{
		Items: []model.CartItem{{ProductID: "sku-1", Size: "42", Color: "black", Quantity: 2, UnitPrice: 100}},
		ShippingAddress: model.Address{
			HouseNumber: "12",
			Street:      "Nguyen Trai",
			Ward:        "Ward 4",
			District:    "District 5",
			City:        "Ho Chi Minh City",
			Phone:       "0912345678",
		},
		ShippingMethod: model.ShippingStandard,
		PaymentMethod:  method,
	}
}

func newCheckoutForTest(orders *stubOrderRepository, pending *stubPendingRepository, gw *stubGatewayClient) *CheckoutUseCase {
	cart := newCartForTest(nil)
	uc := NewCheckoutUseCase(cart, orders, pending, gw, 45*time.Minute, func() time.Time { return checkoutTestNow })
	uc.newRef = func() string { return "ref-1" }
	return uc
}

func TestCheckoutDraftRecomputesTotals(t *testing.T) {
	uc := newCheckoutForTest(&stubOrderRepository{}, newStubPendingRepository(), &stubGatewayClient{})

	draft, err := uc.Draft(context.Background(), 7, validCheckoutInput(model.PaymentMethodCOD))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}
	if draft.TotalAmount != 200 || draft.ShippingCost != 5 || draft.FinalAmount != 205 {
		t.Fatalf("unexpected amounts: %v %v %v", draft.TotalAmount, draft.ShippingCost, draft.FinalAmount)
	}
	if draft.UserID != 7 {
		t.Fatalf("expected user 7, got %d", draft.UserID)
	}
	if len(draft.StatusHistory) != 1 || draft.StatusHistory[0].Status != model.OrderStatusProcessing {
		t.Fatalf("expected initial processing history entry, got %+v", draft.StatusHistory)
	}
	if draft.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("expected pending payment status, got %s", draft.PaymentStatus)
	}
}

func TestCheckoutDraftValidatesAddress(t *testing.T) {
	uc := newCheckoutForTest(&stubOrderRepository{}, newStubPendingRepository(), &stubGatewayClient{})

	in := validCheckoutInput(model.PaymentMethodCOD)
	in.ShippingAddress.City = ""
	if _, err := uc.Draft(context.Background(), 1, in); !errors.Is(err, domainErrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid address for missing city, got %v", err)
	}

	in = validCheckoutInput(model.PaymentMethodCOD)
	in.ShippingAddress.Phone = "12345"
	if _, err := uc.Draft(context.Background(), 1, in); !errors.Is(err, domainErrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid address for short phone, got %v", err)
	}

	in = validCheckoutInput(model.PaymentMethodCOD)
	in.ShippingAddress.Phone = "09123abc78"
	if _, err := uc.Draft(context.Background(), 1, in); !errors.Is(err, domainErrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid address for non-digit phone, got %v", err)
	}
}

func TestCheckoutDraftRejectsUnknownPaymentMethod(t *testing.T) {
	uc := newCheckoutForTest(&stubOrderRepository{}, newStubPendingRepository(), &stubGatewayClient{})

	in := validCheckoutInput(model.PaymentMethod("crypto"))
	if _, err := uc.Draft(context.Background(), 1, in); !errors.Is(err, domainErrors.ErrInvalidPaymentMethod) {
		t.Fatalf("expected invalid payment method error, got %v", err)
	}
}

func TestCheckoutDispatchCardCreatesPaidOrder(t *testing.T) {
	orders := &stubOrderRepository{}
	uc := newCheckoutForTest(orders, newStubPendingRepository(), &stubGatewayClient{})

	draft, err := uc.Draft(context.Background(), 3, validCheckoutInput(model.PaymentMethodCard))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}

	details := &card.Details{Number: "4111 1111 1111 1111", Expiry: "12/29", CVC: "123", Holder: "John Doe"}
	result, err := uc.Dispatch(context.Background(), draft, details)
	if err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if result.Kind != DispatchOrder || result.Order == nil {
		t.Fatalf("expected immediate order result, got %+v", result)
	}
	if len(orders.drafts) != 1 {
		t.Fatalf("expected one created order, got %d", len(orders.drafts))
	}
	if orders.drafts[0].PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("expected card order to be paid, got %s", orders.drafts[0].PaymentStatus)
	}
}

func TestCheckoutDispatchCardRejectsInvalidCard(t *testing.T) {
	orders := &stubOrderRepository{}
	uc := newCheckoutForTest(orders, newStubPendingRepository(), &stubGatewayClient{})

	draft, err := uc.Draft(context.Background(), 3, validCheckoutInput(model.PaymentMethodCard))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}

	details := &card.Details{Number: "4111 1111 1111 1111", Expiry: "01/20", CVC: "123", Holder: "John Doe"}
	if _, err := uc.Dispatch(context.Background(), draft, details); !errors.Is(err, card.ErrInvalid) {
		t.Fatalf("expected card validation error, got %v", err)
	}
	if _, err := uc.Dispatch(context.Background(), draft, nil); !errors.Is(err, card.ErrInvalid) {
		t.Fatalf("expected error for missing card details, got %v", err)
	}
	if len(orders.drafts) != 0 {
		t.Fatalf("no order should be created for invalid card")
	}
}

func TestCheckoutDispatchCODCreatesPendingOrder(t *testing.T) {
	orders := &stubOrderRepository{}
	uc := newCheckoutForTest(orders, newStubPendingRepository(), &stubGatewayClient{})

	draft, err := uc.Draft(context.Background(), 3, validCheckoutInput(model.PaymentMethodCOD))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}
	result, err := uc.Dispatch(context.Background(), draft, nil)
	if err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if result.Kind != DispatchOrder {
		t.Fatalf("expected immediate order result, got %s", result.Kind)
	}
	if orders.drafts[0].PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("expected COD order to stay pending, got %s", orders.drafts[0].PaymentStatus)
	}
}

func TestCheckoutDispatchGatewayRedirect(t *testing.T) {
	orders := &stubOrderRepository{}
	pending := newStubPendingRepository()
	gw := &stubGatewayClient{url: "https://pay.example/checkout?tx=1"}
	uc := newCheckoutForTest(orders, pending, gw)

	draft, err := uc.Draft(context.Background(), 5, validCheckoutInput(model.PaymentMethodGateway))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}
	result, err := uc.Dispatch(context.Background(), draft, nil)
	if err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if result.Kind != DispatchRedirect {
		t.Fatalf("expected redirect result, got %s", result.Kind)
	}
	if result.PaymentURL != "https://pay.example/checkout?tx=1" {
		t.Fatalf("unexpected payment URL %q", result.PaymentURL)
	}
	if result.TransactionRef != "ref-1" {
		t.Fatalf("unexpected transaction ref %q", result.TransactionRef)
	}
	if _, ok := pending.saved["ref-1"]; !ok {
		t.Fatalf("expected pending order to be stored")
	}
	if len(orders.drafts) != 0 {
		t.Fatalf("gateway path must not create an order before settlement")
	}

	req := gw.requests[0]
	if req.AmountMinor != 20500 {
		t.Fatalf("expected amount 20500 minor units, got %d", req.AmountMinor)
	}
	if req.OrderInfo != gateway.OrderInfo("ref-1") {
		t.Fatalf("unexpected order info %q", req.OrderInfo)
	}
}

func TestCheckoutDispatchGatewayFailureKeepsPending(t *testing.T) {
	pending := newStubPendingRepository()
	gw := &stubGatewayClient{err: errors.New("connection refused")}
	uc := newCheckoutForTest(&stubOrderRepository{}, pending, gw)

	draft, err := uc.Draft(context.Background(), 5, validCheckoutInput(model.PaymentMethodGateway))
	if err != nil {
		t.Fatalf("draft returned error: %v", err)
	}
	if _, err := uc.Dispatch(context.Background(), draft, nil); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway unavailable error, got %v", err)
	}
	if _, ok := pending.saved["ref-1"]; !ok {
		t.Fatalf("pending order should remain for the sweeper")
	}
}

func TestCheckoutExpiredPendingUsesTTLCutoff(t *testing.T) {
	pending := newStubPendingRepository()
	uc := newCheckoutForTest(&stubOrderRepository{}, pending, &stubGatewayClient{})

	if _, err := uc.ExpiredPending(context.Background(), 10); err != nil {
		t.Fatalf("expired pending returned error: %v", err)
	}
	expected := checkoutTestNow.Add(-45 * time.Minute)
	if !pending.cutoffIn.Equal(expected) {
		t.Fatalf("expected cutoff %v, got %v", expected, pending.cutoffIn)
	}
}
