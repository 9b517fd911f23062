package model

import "time"

// OrderStatus describes order fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentStatus describes payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// PaymentMethod selects one of the supported checkout flows.
type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodGateway PaymentMethod = "gateway"
)

// Address is the delivery destination. All fields are required.
type Address struct {
	HouseNumber string
	Street      string
	Ward        string
	District    string
	City        string
	Phone       string
}

// OrderItem is a cart line frozen into an order.
type OrderItem struct {
	ProductID     string
	Size          string
	Color         string
	Quantity      int
	UnitPrice     float64
	OriginalPrice float64
}

// StatusEntry is one row of the order status history.
type StatusEntry struct {
	Status    OrderStatus
	Note      string
	CreatedAt time.Time
}

// OrderDraft is an assembled, not yet persisted order payload.
// Amounts satisfy FinalAmount == TotalAmount + ShippingCost - DiscountAmount.
type OrderDraft struct {
	UserID         int64
	Items          []OrderItem
	TotalAmount    float64
	ShippingCost   float64
	DiscountAmount float64
	FinalAmount    float64

	ShippingAddress Address
	ShippingMethod  ShippingMethod
	PaymentMethod   PaymentMethod
	DiscountCode    string
	CustomerNotes   string

	PaymentStatus PaymentStatus
	StatusHistory []StatusEntry

	// Gateway metadata, populated only when the draft is finalized
	// from a settled gateway payment.
	TransactionRef string
	GatewayTxnNo   string
	BankCode       string

	OrderedAt time.Time
	UpdatedAt time.Time
}

// Order is a persisted order owned by the backend.
type Order struct {
	ID             int64
	UserID         int64
	Items          []OrderItem
	TotalAmount    float64
	ShippingCost   float64
	DiscountAmount float64
	FinalAmount    float64

	ShippingAddress Address
	ShippingMethod  ShippingMethod
	PaymentMethod   PaymentMethod
	DiscountCode    string
	CustomerNotes   string

	OrderStatus    OrderStatus
	PaymentStatus  PaymentStatus
	TrackingNumber string
	StatusHistory  []StatusEntry

	TransactionRef string
	GatewayTxnNo   string
	BankCode       string

	OrderedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
}
