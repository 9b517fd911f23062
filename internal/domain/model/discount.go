package model

import "time"

// DiscountKind distinguishes percentage codes from fixed-amount codes.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Discount is a redeemable discount code.
type Discount struct {
	Code        string
	Kind        DiscountKind
	Value       float64
	MinSubtotal float64
	Active      bool
	ExpiresAt   *time.Time
}

// AmountFor computes the discount value against a subtotal. The caller is
// expected to have checked applicability first.
func (d Discount) AmountFor(subtotal float64) float64 {
	switch d.Kind {
	case DiscountPercent:
		return subtotal * d.Value / 100
	case DiscountFixed:
		return d.Value
	default:
		return 0
	}
}

// ApplicableAt reports whether the code can be redeemed against the given
// subtotal at the given time.
func (d Discount) ApplicableAt(subtotal float64, now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ExpiresAt != nil && d.ExpiresAt.Before(now) {
		return false
	}
	return subtotal >= d.MinSubtotal
}
