package repository

import (
	"context"
	"time"

	"github.com/minhvn/solemart/internal/domain/model"
)

// PendingOrderRepository stores drafts surviving the gateway redirect.
type PendingOrderRepository interface {
	Save(ctx context.Context, pending *model.PendingOrder) error
	Get(ctx context.Context, transactionRef string) (*model.PendingOrder, error)
	Delete(ctx context.Context, transactionRef string) error
	// SelectExpired returns pending orders created before the cutoff that are
	// safe to discard: never ones held by a reconcile-failed settlement.
	SelectExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.PendingOrder, error)
}
