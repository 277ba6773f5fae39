package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// DiscountUseCase manages voucher codes.
type DiscountUseCase struct {
	discounts repository.DiscountRepository
}

// NewDiscountUseCase constructs DiscountUseCase.
func NewDiscountUseCase(discounts repository.DiscountRepository) *DiscountUseCase {
	return &DiscountUseCase{discounts: discounts}
}

func prepareDiscount(d model.Discount) (model.Discount, error) {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	if d.Code == "" || !d.Value.IsPositive() || d.MinimumPurchase < 0 {
		return d, domainErrors.ErrInvalidDiscount
	}
	switch d.Type {
	case model.DiscountFixed:
		if !d.Value.IsInteger() {
			return d, domainErrors.ErrInvalidDiscount
		}
		d.MaxDiscountAmount = nil
	case model.DiscountPercentage:
		if d.Value.GreaterThan(hundred) {
			return d, domainErrors.ErrInvalidDiscount
		}
	default:
		return d, domainErrors.ErrInvalidDiscount
	}
	if d.MaxDiscountAmount != nil && *d.MaxDiscountAmount <= 0 {
		return d, domainErrors.ErrInvalidDiscount
	}
	if d.UsageLimit != nil && *d.UsageLimit <= 0 {
		return d, domainErrors.ErrInvalidDiscount
	}
	if d.StartsAt != nil && d.EndsAt != nil && !d.EndsAt.After(*d.StartsAt) {
		return d, domainErrors.ErrInvalidDiscount
	}
	return d, nil
}

// List returns all discounts.
func (u *DiscountUseCase) List(ctx context.Context) ([]model.Discount, error) {
	return u.discounts.List(ctx)
}

// Get returns discount by identifier.
func (u *DiscountUseCase) Get(ctx context.Context, id int64) (*model.Discount, error) {
	return u.discounts.GetByID(ctx, id)
}

// Create stores a new discount.
func (u *DiscountUseCase) Create(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	discount, err := prepareDiscount(discount)
	if err != nil {
		return nil, err
	}
	return u.discounts.Create(ctx, discount)
}

// Update replaces discount attributes. Usage count is kept.
func (u *DiscountUseCase) Update(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	discount, err := prepareDiscount(discount)
	if err != nil {
		return nil, err
	}
	return u.discounts.Update(ctx, discount)
}

// Delete removes discount.
func (u *DiscountUseCase) Delete(ctx context.Context, id int64) error {
	return u.discounts.Delete(ctx, id)
}
