package usecase

import (
	"context"
	"time"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// AdminOrderUpdate carries the mutable fields of an admin order update.
type AdminOrderUpdate struct {
	Status          *model.OrderStatus
	TrackingNumber  *string
	ShippingAddress *model.Address
	Note            string
}

// OrdersUseCase is the order state surface: listings, detail and the
// state-gated customer/admin actions.
type OrdersUseCase struct {
	orders       repository.OrderRepository
	refundWindow time.Duration
	now          func() time.Time
}

// NewOrdersUseCase constructs OrdersUseCase.
func NewOrdersUseCase(orders repository.OrderRepository, refundWindow time.Duration, now func() time.Time) *OrdersUseCase {
	if now == nil {
		now = time.Now
	}
	return &OrdersUseCase{orders: orders, refundWindow: refundWindow, now: now}
}

// ListByUser returns a user's orders, newest first.
func (u *OrdersUseCase) ListByUser(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID, filter)
}

// List returns all orders. Admin only; enforced at the HTTP layer.
func (u *OrdersUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.orders.List(ctx, filter)
}

// Get fetches one order. Non-admin requesters only see their own orders;
// foreign orders read as not found rather than forbidden.
func (u *OrdersUseCase) Get(ctx context.Context, orderID, requesterID int64, admin bool) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != requesterID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Cancel cancels a customer's own order while it is still processing.
func (u *OrdersUseCase) Cancel(ctx context.Context, orderID, userID int64) error {
	order, err := u.Get(ctx, orderID, userID, false)
	if err != nil {
		return err
	}
	if order.OrderStatus != model.OrderStatusProcessing {
		return domainErrors.ErrCancelNotAllowed
	}
	return u.orders.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled, "cancelled by customer", u.now())
}

// RequestRefund flags a delivered, paid order as refunded when the request
// arrives within the refund window after delivery.
func (u *OrdersUseCase) RequestRefund(ctx context.Context, orderID, userID int64) error {
	order, err := u.Get(ctx, orderID, userID, false)
	if err != nil {
		return err
	}
	if order.OrderStatus != model.OrderStatusDelivered || order.PaymentStatus != model.PaymentStatusPaid {
		return domainErrors.ErrRefundNotAllowed
	}
	if order.DeliveredAt == nil || u.now().Sub(*order.DeliveredAt) > u.refundWindow {
		return domainErrors.ErrRefundNotAllowed
	}
	return u.orders.UpdatePaymentStatus(ctx, orderID, model.PaymentStatusRefunded, "refund requested by customer", u.now())
}

// AdminUpdate applies status, tracking and address changes to an order.
func (u *OrdersUseCase) AdminUpdate(ctx context.Context, orderID int64, update AdminOrderUpdate) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	at := u.now()
	if update.Status != nil {
		switch *update.Status {
		case model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
		default:
			return domainErrors.ErrForbidden
		}
		note := update.Note
		if note == "" {
			note = "status updated by admin"
		}
		if err := u.orders.UpdateOrderStatus(ctx, orderID, *update.Status, note, at); err != nil {
			return err
		}
	}
	if update.TrackingNumber != nil || update.ShippingAddress != nil {
		tracking := order.TrackingNumber
		if update.TrackingNumber != nil {
			tracking = *update.TrackingNumber
		}
		if err := u.orders.UpdateShipping(ctx, orderID, tracking, update.ShippingAddress, at); err != nil {
			return err
		}
	}
	return nil
}
