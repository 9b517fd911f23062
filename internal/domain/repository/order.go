package repository

import (
	"context"
	"time"

	"github.com/minhvn/solemart/internal/domain/model"
)

// OrderFilter narrows order listings. Nil fields are ignored.
type OrderFilter struct {
	Status *model.OrderStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, filter OrderFilter) ([]model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus, note string, at time.Time) error
	UpdateShipping(ctx context.Context, orderID int64, tracking string, address *model.Address, at time.Time) error
}
