package repository

import (
	"context"

	"github.com/minhvn/solemart/internal/domain/model"
)

// DiscountRepository resolves discount codes.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Discount, error)
}
