package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

// ensureCartQuery yields the cart of a user, creating the row on first access.
const ensureCartQuery = `INSERT INTO carts (user_id) VALUES ($1)
                         ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
                         RETURNING id, discount_id`

func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart := model.Cart{UserID: userID}
	if err := r.storage.pool.QueryRow(ctx, ensureCartQuery, userID).Scan(&cart.ID, &cart.DiscountID); err != nil {
		return nil, translate(err)
	}

	const itemsQuery = `SELECT ci.id, ci.product_id, ci.variant_id, p.name, p.slug, COALESCE(v.name, ''), ci.price, ci.quantity,
                               COALESCE(v.weight, p.weight), COALESCE(v.stock, p.stock)
                        FROM cart_items ci
                        JOIN products p ON p.id = ci.product_id
                        LEFT JOIN product_variants v ON v.id = ci.variant_id
                        WHERE ci.cart_id=$1
                        ORDER BY ci.id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.VariantID, &item.ProductName, &item.ProductSlug,
			&item.VariantName, &item.Price, &item.Quantity, &item.Weight, &item.Stock); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, variantID *int64, price int64, quantity int) error {
	var cartID int64
	var discountID *int64
	if err := r.storage.pool.QueryRow(ctx, ensureCartQuery, userID).Scan(&cartID, &discountID); err != nil {
		return translate(err)
	}

	const query = `INSERT INTO cart_items (cart_id, product_id, variant_id, price, quantity)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (cart_id, product_id, (COALESCE(variant_id, 0)))
                   DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, price = EXCLUDED.price`
	if _, err := r.storage.pool.Exec(ctx, query, cartID, productID, variantID, price, quantity); err != nil {
		return translate(err)
	}
	return nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity=$1
                   WHERE id=$2 AND cart_id = (SELECT id FROM carts WHERE user_id=$3)`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, itemID, userID)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, itemID int64) error {
	const query = `DELETE FROM cart_items WHERE id=$1 AND cart_id = (SELECT id FROM carts WHERE user_id=$2)`
	tag, err := r.storage.pool.Exec(ctx, query, itemID, userID)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func (r *cartRepository) SetDiscount(ctx context.Context, userID int64, discountID *int64) error {
	const query = `INSERT INTO carts (user_id, discount_id) VALUES ($1, $2)
                   ON CONFLICT (user_id) DO UPDATE SET discount_id = EXCLUDED.discount_id, updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, userID, discountID); err != nil {
		return translate(err)
	}
	return nil
}
