package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
)

type stubDiscountRepository struct {
	getFn func(context.Context, string) (*model.Discount, error)
}

func (s stubDiscountRepository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	if s.getFn != nil {
		return s.getFn(ctx, code)
	}
	return nil, domainErrors.ErrNotFound
}

var cartTestNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newCartForTest(getFn func(context.Context, string) (*model.Discount, error)) *CartUseCase {
	return NewCartUseCase(stubDiscountRepository{getFn: getFn}, 500, func() time.Time { return cartTestNow })
}

func TestCartQuoteEmptyCart(t *testing.T) {
	uc := newCartForTest(nil)
	if _, err := uc.Quote(context.Background(), nil, model.ShippingStandard, ""); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCartQuoteUnknownShippingMethod(t *testing.T) {
	uc := newCartForTest(nil)
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 1, UnitPrice: 10}}
	if _, err := uc.Quote(context.Background(), items, model.ShippingMethod("drone"), ""); !errors.Is(err, domainErrors.ErrInvalidShippingMethod) {
		t.Fatalf("expected invalid shipping method error, got %v", err)
	}
}

func TestCartQuoteStandardShipping(t *testing.T) {
	uc := newCartForTest(nil)
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 2, UnitPrice: 100}}

	totals, err := uc.Quote(context.Background(), items, model.ShippingStandard, "")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if totals.Subtotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", totals.Subtotal)
	}
	if totals.ShippingCost != 5 {
		t.Fatalf("expected shipping 5, got %v", totals.ShippingCost)
	}
	if totals.Total != 205 {
		t.Fatalf("expected total 205, got %v", totals.Total)
	}
}

func TestCartQuoteFreeShippingOverThreshold(t *testing.T) {
	uc := newCartForTest(nil)
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 6, UnitPrice: 100}}

	totals, err := uc.Quote(context.Background(), items, model.ShippingFast, "")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if totals.ShippingCost != 0 {
		t.Fatalf("expected free shipping, got %v", totals.ShippingCost)
	}
	if totals.Total != 600 {
		t.Fatalf("expected total 600, got %v", totals.Total)
	}
}

func TestCartQuoteShippingTable(t *testing.T) {
	uc := newCartForTest(nil)
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 1, UnitPrice: 50}}

	cases := []struct {
		method model.ShippingMethod
		cost   float64
	}{
		{model.ShippingStandard, 5},
		{model.ShippingFast, 10},
		{model.ShippingAirplane, 20},
	}
	for _, tc := range cases {
		totals, err := uc.Quote(context.Background(), items, tc.method, "")
		if err != nil {
			t.Fatalf("quote %s returned error: %v", tc.method, err)
		}
		if totals.ShippingCost != tc.cost {
			t.Fatalf("method %s: expected shipping %v, got %v", tc.method, tc.cost, totals.ShippingCost)
		}
	}
}

func TestCartQuotePercentDiscount(t *testing.T) {
	uc := newCartForTest(func(ctx context.Context, code string) (*model.Discount, error) {
		if code != "SALE10" {
			t.Fatalf("unexpected code %q", code)
		}
		return &model.Discount{Code: "SALE10", Kind: model.DiscountPercent, Value: 10, Active: true}, nil
	})
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 2, UnitPrice: 100}}

	totals, err := uc.Quote(context.Background(), items, model.ShippingStandard, "SALE10")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if totals.DiscountAmount != 20 {
		t.Fatalf("expected discount 20, got %v", totals.DiscountAmount)
	}
	if totals.Total != 185 {
		t.Fatalf("expected total 185, got %v", totals.Total)
	}
}

func TestCartQuoteUnknownDiscountCode(t *testing.T) {
	uc := newCartForTest(nil)
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 1, UnitPrice: 10}}
	if _, err := uc.Quote(context.Background(), items, model.ShippingStandard, "NOPE"); !errors.Is(err, domainErrors.ErrInvalidDiscount) {
		t.Fatalf("expected invalid discount error, got %v", err)
	}
}

func TestCartQuoteExpiredDiscount(t *testing.T) {
	expired := cartTestNow.Add(-time.Hour)
	uc := newCartForTest(func(context.Context, string) (*model.Discount, error) {
		return &model.Discount{Code: "OLD", Kind: model.DiscountFixed, Value: 5, Active: true, ExpiresAt: &expired}, nil
	})
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 1, UnitPrice: 10}}
	if _, err := uc.Quote(context.Background(), items, model.ShippingStandard, "OLD"); !errors.Is(err, domainErrors.ErrInvalidDiscount) {
		t.Fatalf("expected invalid discount error, got %v", err)
	}
}

func TestCartQuoteTotalFlooredAtZero(t *testing.T) {
	uc := newCartForTest(func(context.Context, string) (*model.Discount, error) {
		return &model.Discount{Code: "BIG", Kind: model.DiscountFixed, Value: 100, Active: true}, nil
	})
	items := []model.CartItem{{ProductID: "sku-1", Quantity: 1, UnitPrice: 10}}

	totals, err := uc.Quote(context.Background(), items, model.ShippingStandard, "BIG")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if totals.Total != 0 {
		t.Fatalf("expected total floored at 0, got %v", totals.Total)
	}
}

func TestCartValidateDiscount(t *testing.T) {
	uc := newCartForTest(func(context.Context, string) (*model.Discount, error) {
		return &model.Discount{Code: "SALE10", Kind: model.DiscountPercent, Value: 10, MinSubtotal: 100, Active: true}, nil
	})

	amount, err := uc.ValidateDiscount(context.Background(), "SALE10", 200)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if amount != 20 {
		t.Fatalf("expected amount 20, got %v", amount)
	}

	if _, err := uc.ValidateDiscount(context.Background(), "SALE10", 50); !errors.Is(err, domainErrors.ErrInvalidDiscount) {
		t.Fatalf("expected invalid discount below min subtotal, got %v", err)
	}
}
