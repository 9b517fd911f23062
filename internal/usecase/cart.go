package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// shippingCosts is the fixed shipping table keyed by method.
var shippingCosts = map[model.ShippingMethod]float64{
	model.ShippingStandard: 5,
	model.ShippingFast:     10,
	model.ShippingAirplane: 20,
}

// CartUseCase prices carts: subtotal, shipping, discount and final total.
type CartUseCase struct {
	discounts             repository.DiscountRepository
	freeShippingThreshold float64
	now                   func() time.Time
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(discounts repository.DiscountRepository, freeShippingThreshold float64, now func() time.Time) *CartUseCase {
	if now == nil {
		now = time.Now
	}
	return &CartUseCase{discounts: discounts, freeShippingThreshold: freeShippingThreshold, now: now}
}

// Quote computes totals for the given cart. The total never drops below zero.
func (u *CartUseCase) Quote(ctx context.Context, items []model.CartItem, method model.ShippingMethod, discountCode string) (*model.CartTotals, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	shipping, ok := shippingCosts[method]
	if !ok {
		return nil, domainErrors.ErrInvalidShippingMethod
	}

	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	if subtotal >= u.freeShippingThreshold {
		shipping = 0
	}

	var discount float64
	if discountCode != "" {
		d, err := u.discounts.GetByCode(ctx, discountCode)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrInvalidDiscount
			}
			return nil, err
		}
		if !d.ApplicableAt(subtotal, u.now()) {
			return nil, domainErrors.ErrInvalidDiscount
		}
		discount = d.AmountFor(subtotal)
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return &model.CartTotals{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		Total:          total,
	}, nil
}

// ValidateDiscount resolves a code against a subtotal and returns the
// discount amount it would grant.
func (u *CartUseCase) ValidateDiscount(ctx context.Context, code string, subtotal float64) (float64, error) {
	d, err := u.discounts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.ErrInvalidDiscount
		}
		return 0, err
	}
	if !d.ApplicableAt(subtotal, u.now()) {
		return 0, domainErrors.ErrInvalidDiscount
	}
	return d.AmountFor(subtotal), nil
}
