package repository

import (
	"context"

	"github.com/minhvn/solemart/internal/domain/model"
)

// SettlementRepository manages idempotency records for gateway callbacks.
type SettlementRepository interface {
	// Claim atomically inserts the settlement for its transaction ref.
	// When the ref was already claimed it returns claimed=false together
	// with the previously stored settlement.
	Claim(ctx context.Context, settlement *model.Settlement) (claimed bool, existing *model.Settlement, err error)
	Get(ctx context.Context, transactionRef string) (*model.Settlement, error)
	AttachOrder(ctx context.Context, transactionRef string, orderID int64) error
	MarkReconcileFailed(ctx context.Context, transactionRef string) error
}
