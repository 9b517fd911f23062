package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidShippingMethod = errors.New("unknown shipping method")
	ErrInvalidDiscount       = errors.New("discount code is not applicable")
	ErrInvalidAddress        = errors.New("shipping address is incomplete")
	ErrInvalidPaymentMethod  = errors.New("unknown payment method")

	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayDeclined    = errors.New("payment declined by gateway")
	ErrReconciliation     = errors.New("payment confirmed but order could not be finalized")

	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
	ErrRefundNotAllowed = errors.New("order is not eligible for refund")
	ErrForbidden        = errors.New("operation not permitted")
)
