package dto

// AddressPayload is the delivery destination.
type AddressPayload struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Ward        string `json:"ward"`
	District    string `json:"district"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
}

// CardPayload carries card details for the direct card path. Validated and
// discarded, never persisted.
type CardPayload struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
	Holder string `json:"holder"`
}

// CheckoutRequest places an order.
type CheckoutRequest struct {
	Items           []CartItemPayload `json:"items"`
	ShippingAddress AddressPayload    `json:"shipping_address"`
	ShippingMethod  string            `json:"shipping_method"`
	PaymentMethod   string            `json:"payment_method"`
	DiscountCode    string            `json:"discount_code"`
	Notes           string            `json:"notes"`
	Card            *CardPayload      `json:"card,omitempty"`
}

// CheckoutResponse is either a created order or a gateway redirect.
type CheckoutResponse struct {
	Order          *OrderResponse `json:"order,omitempty"`
	PaymentURL     string         `json:"payment_url,omitempty"`
	TransactionRef string         `json:"transaction_ref,omitempty"`
}
