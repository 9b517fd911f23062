package dto

import "time"

// OrderItemResponse is one frozen order line.
type OrderItemResponse struct {
	ProductID     string  `json:"product_id"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	OriginalPrice float64 `json:"original_price"`
}

// StatusEntryResponse is one order status history row.
type StatusEntryResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	ID              int64                 `json:"id"`
	Items           []OrderItemResponse   `json:"items"`
	TotalAmount     float64               `json:"total_amount"`
	ShippingCost    float64               `json:"shipping_cost"`
	DiscountAmount  float64               `json:"discount_amount"`
	FinalAmount     float64               `json:"final_amount"`
	ShippingAddress AddressPayload        `json:"shipping_address"`
	ShippingMethod  string                `json:"shipping_method"`
	PaymentMethod   string                `json:"payment_method"`
	OrderStatus     string                `json:"order_status"`
	PaymentStatus   string                `json:"payment_status"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	StatusHistory   []StatusEntryResponse `json:"status_history,omitempty"`
	OrderedAt       time.Time             `json:"ordered_at"`
	DeliveredAt     *time.Time            `json:"delivered_at,omitempty"`
}

// AdminOrderUpdateRequest mutates an order on behalf of an administrator.
type AdminOrderUpdateRequest struct {
	Status          *string         `json:"status"`
	TrackingNumber  *string         `json:"tracking_number"`
	ShippingAddress *AddressPayload `json:"shipping_address"`
	Note            string          `json:"note"`
}
