package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

const discountColumns = `id, code, type, value, max_discount_amount, minimum_purchase, usage_limit, usage_count, starts_at, ends_at, is_active, created_at`

func (r *discountRepository) List(ctx context.Context) ([]model.Discount, error) {
	const query = `SELECT ` + discountColumns + ` FROM discounts ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *discountRepository) GetByID(ctx context.Context, id int64) (*model.Discount, error) {
	const query = `SELECT ` + discountColumns + ` FROM discounts WHERE id=$1`
	d, err := scanDiscount(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	const query = `SELECT ` + discountColumns + ` FROM discounts WHERE code=$1`
	d, err := scanDiscount(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (r *discountRepository) Create(ctx context.Context, d model.Discount) (*model.Discount, error) {
	const query = `INSERT INTO discounts (code, type, value, max_discount_amount, minimum_purchase, usage_limit, starts_at, ends_at, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, usage_count, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		d.Code, d.Type, d.Value, d.MaxDiscountAmount, d.MinimumPurchase, d.UsageLimit, d.StartsAt, d.EndsAt, d.IsActive,
	).Scan(&d.ID, &d.UsageCount, &d.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// Update leaves usage_count untouched; it only moves when orders are placed.
func (r *discountRepository) Update(ctx context.Context, d model.Discount) (*model.Discount, error) {
	const query = `UPDATE discounts
                   SET code=$1, type=$2, value=$3, max_discount_amount=$4, minimum_purchase=$5, usage_limit=$6, starts_at=$7, ends_at=$8, is_active=$9
                   WHERE id=$10
                   RETURNING usage_count, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		d.Code, d.Type, d.Value, d.MaxDiscountAmount, d.MinimumPurchase, d.UsageLimit, d.StartsAt, d.EndsAt, d.IsActive, d.ID,
	).Scan(&d.UsageCount, &d.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *discountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM discounts WHERE id=$1`, id)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func (r *discountRepository) HasUsed(ctx context.Context, discountID, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM discount_usages WHERE discount_id=$1 AND user_id=$2)`
	var used bool
	if err := r.storage.pool.QueryRow(ctx, query, discountID, userID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}

func scanDiscount(row interface{ Scan(...any) error }) (*model.Discount, error) {
	var d model.Discount
	err := row.Scan(&d.ID, &d.Code, &d.Type, &d.Value, &d.MaxDiscountAmount, &d.MinimumPurchase,
		&d.UsageLimit, &d.UsageCount, &d.StartsAt, &d.EndsAt, &d.IsActive, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
