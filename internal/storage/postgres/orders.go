package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

const (
	orderColumns = `o.id, o.number, o.user_id, o.status, o.subtotal, o.discount_id, o.discount_amount, o.shipping_cost, o.total, o.total_weight,
        o.courier, o.tracking_number, o.recipient_name, o.phone, o.address, o.city, o.postal_code, o.note, o.created_at, o.updated_at`
	paymentColumns = `pm.id, pm.order_id, pm.external_id, pm.invoice_id, pm.invoice_url, pm.amount, pm.status, pm.method, pm.reference,
        pm.paid_at, pm.expires_at, pm.created_at, pm.updated_at`
	orderWithPayment = `SELECT ` + orderColumns + `, ` + paymentColumns + ` FROM orders o JOIN payments pm ON pm.order_id = o.id`
)

func orderDest(o *model.Order) []any {
	return []any{&o.ID, &o.Number, &o.UserID, &o.Status, &o.Subtotal, &o.DiscountID, &o.DiscountAmount, &o.ShippingCost,
		&o.Total, &o.TotalWeight, &o.Courier, &o.TrackingNumber, &o.Address.RecipientName, &o.Address.Phone,
		&o.Address.Address, &o.Address.City, &o.Address.PostalCode, &o.Note, &o.CreatedAt, &o.UpdatedAt}
}

func paymentDest(p *model.Payment) []any {
	return []any{&p.ID, &p.OrderID, &p.ExternalID, &p.InvoiceID, &p.InvoiceURL, &p.Amount, &p.Status, &p.Method,
		&p.Reference, &p.PaidAt, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt}
}

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var (
		o model.Order
		p model.Payment
	)
	if err := row.Scan(append(orderDest(&o), paymentDest(&p)...)...); err != nil {
		return nil, err
	}
	o.Payment = &p
	return &o, nil
}

// Place stores the order graph and reserves stock in one transaction.
func (r *orderRepository) Place(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	order := draft.Order
	payment := draft.Payment

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (number, user_id, status, subtotal, discount_id, discount_amount, shipping_cost, total,
                                 total_weight, courier, recipient_name, phone, address, city, postal_code, note)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.UserID, order.Status, order.Subtotal, order.DiscountID, order.DiscountAmount,
			order.ShippingCost, order.Total, order.TotalWeight, order.Courier,
			order.Address.RecipientName, order.Address.Phone, order.Address.Address, order.Address.City,
			order.Address.PostalCode, order.Note,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return translate(err)
		}

		const insertDetail = `INSERT INTO order_details (order_id, product_id, variant_id, product_name, variant_name, price, quantity, weight, subtotal)
                              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                              RETURNING id`
		for i := range order.Details {
			d := &order.Details[i]
			if err := reserveStock(ctx, tx, *d); err != nil {
				return err
			}
			d.OrderID = order.ID
			err := tx.QueryRow(ctx, insertDetail,
				d.OrderID, d.ProductID, d.VariantID, d.ProductName, d.VariantName, d.Price, d.Quantity, d.Weight, d.Subtotal,
			).Scan(&d.ID)
			if err != nil {
				return err
			}
		}

		const insertPayment = `INSERT INTO payments (order_id, external_id, invoice_id, invoice_url, amount, status, expires_at)
                               VALUES ($1, $2, $3, $4, $5, $6, $7)
                               RETURNING id, created_at, updated_at`
		payment.OrderID = order.ID
		err = tx.QueryRow(ctx, insertPayment,
			payment.OrderID, payment.ExternalID, payment.InvoiceID, payment.InvoiceURL, payment.Amount, payment.Status, payment.ExpiresAt,
		).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return translate(err)
		}

		if order.DiscountID != nil {
			if err := useDiscount(ctx, tx, *order.DiscountID, order.UserID, order.ID); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, draft.CartID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE carts SET discount_id=NULL, updated_at=NOW() WHERE id=$1`, draft.CartID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Payment = &payment
	return &order, nil
}

// reserveStock decrements stock of the variant or, without one, the product.
func reserveStock(ctx context.Context, q querier, d model.OrderDetail) error {
	var (
		query string
		id    int64
	)
	if d.VariantID != nil {
		query = `UPDATE product_variants SET stock = stock - $1 WHERE id=$2 AND stock >= $1`
		id = *d.VariantID
	} else {
		query = `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id=$2 AND stock >= $1`
		id = d.ProductID
	}
	tag, err := q.Exec(ctx, query, d.Quantity, id)
	return expectAffected(tag, err, domainErrors.ErrInsufficientStock)
}

// restoreStock returns quantities of all order lines back to stock.
func restoreStock(ctx context.Context, q querier, orderID int64) error {
	const restoreProducts = `UPDATE products p SET stock = p.stock + d.qty, updated_at = NOW()
                             FROM (SELECT product_id, SUM(quantity) AS qty FROM order_details
                                   WHERE order_id=$1 AND variant_id IS NULL GROUP BY product_id) d
                             WHERE p.id = d.product_id`
	if _, err := q.Exec(ctx, restoreProducts, orderID); err != nil {
		return err
	}

	const restoreVariants = `UPDATE product_variants v SET stock = v.stock + d.qty
                             FROM (SELECT variant_id, SUM(quantity) AS qty FROM order_details
                                   WHERE order_id=$1 AND variant_id IS NOT NULL GROUP BY variant_id) d
                             WHERE v.id = d.variant_id`
	if _, err := q.Exec(ctx, restoreVariants, orderID); err != nil {
		return err
	}
	return nil
}

// useDiscount records one use per customer and consumes the usage limit of a
// discount that is still within its validity window.
func useDiscount(ctx context.Context, q querier, discountID, userID, orderID int64) error {
	const insertUsage = `INSERT INTO discount_usages (discount_id, user_id, order_id) VALUES ($1, $2, $3)`
	if _, err := q.Exec(ctx, insertUsage, discountID, userID, orderID); err != nil {
		err = translate(err)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return domainErrors.ErrDiscountAlreadyUsed
		}
		return err
	}

	const consume = `UPDATE discounts SET usage_count = usage_count + 1
                     WHERE id=$1 AND is_active
                       AND (starts_at IS NULL OR starts_at <= NOW())
                       AND (ends_at IS NULL OR ends_at >= NOW())
                       AND (usage_limit IS NULL OR usage_count < usage_limit)`
	tag, err := q.Exec(ctx, consume, discountID)
	return expectAffected(tag, err, domainErrors.ErrDiscountUnavailable)
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, orderWithPayment+` WHERE o.number=$1`, number))
	if err != nil {
		return nil, translate(err)
	}

	const detailsQuery = `SELECT id, order_id, product_id, variant_id, product_name, variant_name, price, quantity, weight, subtotal
                          FROM order_details WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, detailsQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d model.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.VariantID, &d.ProductName, &d.VariantName,
			&d.Price, &d.Quantity, &d.Weight, &d.Subtotal); err != nil {
			return nil, err
		}
		order.Details = append(order.Details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, orderWithPayment+` WHERE o.user_id=$1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func (r *orderRepository) List(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if status == nil {
		return r.list(ctx, orderWithPayment+` ORDER BY o.created_at DESC, o.id DESC`)
	}
	return r.list(ctx, orderWithPayment+` WHERE o.status=$1 ORDER BY o.created_at DESC, o.id DESC`, *status)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, trackingNumber string) error {
	if to.Refundable() {
		const query = `UPDATE orders SET status=$1, tracking_number=$2, updated_at=NOW() WHERE id=$3 AND status=$4`
		tag, err := r.storage.pool.Exec(ctx, query, to, trackingNumber, orderID, from)
		return expectAffected(tag, err, domainErrors.ErrInvalidStatusTransition)
	}

	// Leaving the refundable window is blocked while a refund is open.
	const guarded = `UPDATE orders SET status=$1, tracking_number=$2, updated_at=NOW()
                     WHERE id=$3 AND status=$4
                       AND NOT EXISTS (SELECT 1 FROM refunds WHERE order_id=$3 AND status IN ($5, $6))`
	tag, err := r.storage.pool.Exec(ctx, guarded, to, trackingNumber, orderID, from,
		model.RefundStatusPending, model.RefundStatusApproved)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const activeRefund = `SELECT EXISTS (SELECT 1 FROM refunds WHERE order_id=$1 AND status IN ($2, $3))`
	var active bool
	if err := r.storage.pool.QueryRow(ctx, activeRefund, orderID, model.RefundStatusPending, model.RefundStatusApproved).Scan(&active); err != nil {
		return err
	}
	if active {
		return domainErrors.ErrRefundInProgress
	}
	return domainErrors.ErrInvalidStatusTransition
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cancelOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
		tag, err := tx.Exec(ctx, cancelOrder, model.OrderStatusCanceled, orderID, model.OrderStatusWaitingPayment)
		if err := expectAffected(tag, err, domainErrors.ErrOrderNotCancelable); err != nil {
			return err
		}

		const expirePayment = `UPDATE payments SET status=$1, updated_at=NOW() WHERE order_id=$2 AND status=$3`
		if _, err := tx.Exec(ctx, expirePayment, model.PaymentStatusExpired, orderID, model.PaymentStatusUnpaid); err != nil {
			return err
		}
		return restoreStock(ctx, tx, orderID)
	})
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := model.OrderStats{ByStatus: make(map[model.OrderStatus]int)}
	for rows.Next() {
		var (
			status model.OrderStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const revenueQuery = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status IN ('paid', 'settled')`
	if err := r.storage.pool.QueryRow(ctx, revenueQuery).Scan(&stats.Revenue); err != nil {
		return nil, err
	}
	return &stats, nil
}
