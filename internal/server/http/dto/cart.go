package dto

// CartItemPayload is one storefront cart line.
type CartItemPayload struct {
	ProductID     string  `json:"product_id"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	OriginalPrice float64 `json:"original_price"`
}

// QuoteRequest asks for server-side cart totals.
type QuoteRequest struct {
	Items          []CartItemPayload `json:"items"`
	ShippingMethod string            `json:"shipping_method"`
	DiscountCode   string            `json:"discount_code"`
}

// QuoteResponse carries the recomputed totals.
type QuoteResponse struct {
	Subtotal       float64 `json:"subtotal"`
	ShippingCost   float64 `json:"shipping_cost"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// DiscountRequest validates a code against a subtotal.
type DiscountRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// DiscountResponse reports the discount amount a code grants.
type DiscountResponse struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}
