package model

// ShippingMethod selects a delivery option priced by the fixed shipping table.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingFast     ShippingMethod = "fast"
	ShippingAirplane ShippingMethod = "airplane"
)

// CartItem is a single cart line as submitted by the storefront client.
type CartItem struct {
	ProductID     string
	Size          string
	Color         string
	Quantity      int
	UnitPrice     float64
	OriginalPrice float64
}

// CartTotals aggregates the priced cart. Total is floored at zero.
type CartTotals struct {
	Subtotal       float64
	ShippingCost   float64
	DiscountAmount float64
	Total          float64
}
