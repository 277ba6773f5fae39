package repository

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// DiscountRepository manages voucher codes and their usage.
type DiscountRepository interface {
	List(ctx context.Context) ([]model.Discount, error)
	GetByID(ctx context.Context, id int64) (*model.Discount, error)
	GetByCode(ctx context.Context, code string) (*model.Discount, error)
	Create(ctx context.Context, discount model.Discount) (*model.Discount, error)
	Update(ctx context.Context, discount model.Discount) (*model.Discount, error)
	Delete(ctx context.Context, id int64) error
	HasUsed(ctx context.Context, discountID, userID int64) (bool, error)
}
