package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/pkg/card"
)

// CheckoutInput carries everything the customer submits at checkout.
type CheckoutInput struct {
	Items           []model.CartItem
	ShippingAddress model.Address
	ShippingMethod  model.ShippingMethod
	PaymentMethod   model.PaymentMethod
	DiscountCode    string
	Notes           string
	Card            *card.Details
}

// DispatchKind distinguishes an immediately created order from a gateway redirect.
type DispatchKind string

const (
	DispatchOrder    DispatchKind = "order"
	DispatchRedirect DispatchKind = "redirect"
)

// DispatchResult is the outcome of a checkout dispatch.
type DispatchResult struct {
	Kind           DispatchKind
	Order          *model.Order
	PaymentURL     string
	TransactionRef string
}

// CheckoutUseCase drafts orders and dispatches them on the chosen payment path.
type CheckoutUseCase struct {
	cart       *CartUseCase
	orders     repository.OrderRepository
	pending    repository.PendingOrderRepository
	gateway    gateway.Client
	pendingTTL time.Duration
	now        func() time.Time
	newRef     func() string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	cart *CartUseCase,
	orders repository.OrderRepository,
	pending repository.PendingOrderRepository,
	gw gateway.Client,
	pendingTTL time.Duration,
	now func() time.Time,
) *CheckoutUseCase {
	if now == nil {
		now = time.Now
	}
	return &CheckoutUseCase{
		cart:       cart,
		orders:     orders,
		pending:    pending,
		gateway:    gw,
		pendingTTL: pendingTTL,
		now:        now,
		newRef:     func() string { return uuid.NewString() },
	}
}

// Draft assembles a normalized order payload from the checkout input.
// Amounts are recomputed server side; client-submitted totals are ignored.
func (u *CheckoutUseCase) Draft(ctx context.Context, userID int64, in CheckoutInput) (*model.OrderDraft, error) {
	if err := validateAddress(in.ShippingAddress); err != nil {
		return nil, err
	}
	switch in.PaymentMethod {
	case model.PaymentMethodCard, model.PaymentMethodCOD, model.PaymentMethodGateway:
	default:
		return nil, domainErrors.ErrInvalidPaymentMethod
	}

	totals, err := u.cart.Quote(ctx, in.Items, in.ShippingMethod, in.DiscountCode)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, ci := range in.Items {
		items = append(items, model.OrderItem{
			ProductID:     ci.ProductID,
			Size:          ci.Size,
			Color:         ci.Color,
			Quantity:      ci.Quantity,
			UnitPrice:     ci.UnitPrice,
			OriginalPrice: ci.OriginalPrice,
		})
	}

	now := u.now()
	return &model.OrderDraft{
		UserID:          userID,
		Items:           items,
		TotalAmount:     totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		DiscountAmount:  totals.DiscountAmount,
		FinalAmount:     totals.Total,
		ShippingAddress: in.ShippingAddress,
		ShippingMethod:  in.ShippingMethod,
		PaymentMethod:   in.PaymentMethod,
		DiscountCode:    in.DiscountCode,
		CustomerNotes:   in.Notes,
		PaymentStatus:   model.PaymentStatusPending,
		StatusHistory: []model.StatusEntry{
			{Status: model.OrderStatusProcessing, Note: "order placed", CreatedAt: now},
		},
		OrderedAt: now,
		UpdatedAt: now,
	}, nil
}

// Dispatch executes the payment path chosen in the draft. Card and
// cash-on-delivery create the order immediately; the gateway path stashes the
// draft as a pending order and hands back a redirect URL instead.
func (u *CheckoutUseCase) Dispatch(ctx context.Context, draft *model.OrderDraft, details *card.Details) (*DispatchResult, error) {
	switch draft.PaymentMethod {
	case model.PaymentMethodCard:
		if details == nil {
			return nil, fmt.Errorf("%w: card details required", card.ErrInvalid)
		}
		if err := card.Validate(*details, u.now()); err != nil {
			return nil, err
		}
		draft.PaymentStatus = model.PaymentStatusPaid
		order, err := u.orders.Create(ctx, draft)
		if err != nil {
			return nil, err
		}
		return &DispatchResult{Kind: DispatchOrder, Order: order}, nil

	case model.PaymentMethodCOD:
		draft.PaymentStatus = model.PaymentStatusPending
		order, err := u.orders.Create(ctx, draft)
		if err != nil {
			return nil, err
		}
		return &DispatchResult{Kind: DispatchOrder, Order: order}, nil

	case model.PaymentMethodGateway:
		ref := u.newRef()
		pending := &model.PendingOrder{
			TransactionRef: ref,
			UserID:         draft.UserID,
			Draft:          *draft,
			CreatedAt:      u.now(),
		}
		if err := u.pending.Save(ctx, pending); err != nil {
			return nil, err
		}

		paymentURL, err := u.gateway.CreatePaymentURL(ctx, gateway.PaymentRequest{
			AmountMinor: gateway.MinorUnits(draft.FinalAmount),
			Language:    "vn",
			OrderInfo:   gateway.OrderInfo(ref),
		})
		if err != nil {
			// Pending order stays behind for the sweeper.
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
		}
		return &DispatchResult{Kind: DispatchRedirect, PaymentURL: paymentURL, TransactionRef: ref}, nil

	default:
		return nil, domainErrors.ErrInvalidPaymentMethod
	}
}

// ExpiredPending returns pending orders past their TTL that are safe to discard.
func (u *CheckoutUseCase) ExpiredPending(ctx context.Context, limit int) ([]model.PendingOrder, error) {
	cutoff := u.now().Add(-u.pendingTTL)
	return u.pending.SelectExpired(ctx, cutoff, limit)
}

// DiscardPending removes an abandoned pending order.
func (u *CheckoutUseCase) DiscardPending(ctx context.Context, transactionRef string) error {
	return u.pending.Delete(ctx, transactionRef)
}

func validateAddress(a model.Address) error {
	required := []struct {
		field string
		value string
	}{
		{"house number", a.HouseNumber},
		{"street", a.Street},
		{"ward", a.Ward},
		{"district", a.District},
		{"city", a.City},
		{"phone", a.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: missing %s", domainErrors.ErrInvalidAddress, f.field)
		}
	}

	digits := 0
	for _, r := range a.Phone {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: phone must contain only digits", domainErrors.ErrInvalidAddress)
		}
		digits++
	}
	if digits < 9 || digits > 11 {
		return fmt.Errorf("%w: phone must be 9-11 digits", domainErrors.ErrInvalidAddress)
	}
	return nil
}
