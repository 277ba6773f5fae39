package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// Settle applies the outcome decided for a payment while its row and the
// order row stay locked, so concurrent callbacks observe each other.
func (r *paymentRepository) Settle(ctx context.Context, externalID string, decide repository.PaymentDecision) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + paymentColumns + `, ` + orderColumns + `
                           FROM payments pm JOIN orders o ON o.id = pm.order_id
                           WHERE pm.external_id=$1
                           FOR UPDATE`
		var (
			payment model.Payment
			order   model.Order
		)
		if err := tx.QueryRow(ctx, lockQuery, externalID).Scan(append(paymentDest(&payment), orderDest(&order)...)...); err != nil {
			return translate(err)
		}

		settlement, err := decide(payment, order)
		if err != nil {
			return err
		}
		if settlement == nil {
			return nil
		}

		const updatePayment = `UPDATE payments
                               SET status=$1, method=COALESCE(NULLIF($2, ''), method), reference=COALESCE(NULLIF($3, ''), reference),
                                   paid_at=COALESCE($4, paid_at), updated_at=NOW()
                               WHERE id=$5`
		if _, err := tx.Exec(ctx, updatePayment,
			settlement.PaymentStatus, settlement.Method, settlement.Reference, settlement.PaidAt, payment.ID,
		); err != nil {
			return err
		}

		if settlement.OrderStatus != "" && settlement.OrderStatus != order.Status {
			const updateOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
			if _, err := tx.Exec(ctx, updateOrder, settlement.OrderStatus, order.ID); err != nil {
				return err
			}
		}

		if settlement.RestoreStock {
			return restoreStock(ctx, tx, order.ID)
		}
		return nil
	})
}

// ListStale claims a batch of overdue unpaid payments and stamps checked_at
// so the next poll rotates to other rows.
func (r *paymentRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]model.Payment, error) {
	const query = `UPDATE payments AS pm SET checked_at = NOW()
                   WHERE pm.id IN (
                       SELECT id FROM payments
                       WHERE status=$1 AND expires_at < $2
                       ORDER BY checked_at NULLS FIRST, expires_at
                       LIMIT $3
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING ` + paymentColumns
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusUnpaid, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(paymentDest(&p)...); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
