package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

const (
	refundColumns = `r.id, r.payment_id, r.order_id, o.number, COALESCE(r.reference, ''), r.external_id, r.amount, r.reason, r.status,
        r.failure_code, r.failure_reason, r.admin_note, r.created_at, r.updated_at`
	refundSelect = `SELECT ` + refundColumns + ` FROM refunds r JOIN orders o ON o.id = r.order_id`
)

func refundDest(rf *model.Refund) []any {
	return []any{&rf.ID, &rf.PaymentID, &rf.OrderID, &rf.OrderNumber, &rf.Reference, &rf.ExternalID, &rf.Amount,
		&rf.Reason, &rf.Status, &rf.FailureCode, &rf.FailureReason, &rf.AdminNote, &rf.CreatedAt, &rf.UpdatedAt}
}

// Create fails with ErrAlreadyExists while another refund of the payment is
// still pending or approved.
func (r *refundRepository) Create(ctx context.Context, refund model.Refund) (*model.Refund, error) {
	const query = `INSERT INTO refunds (payment_id, order_id, amount, reason, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, refund.PaymentID, refund.OrderID, refund.Amount, refund.Reason, refund.Status).
		Scan(&refund.ID, &refund.CreatedAt, &refund.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &refund, nil
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*model.Refund, error) {
	var refund model.Refund
	if err := r.storage.pool.QueryRow(ctx, refundSelect+` WHERE r.id=$1`, id).Scan(refundDest(&refund)...); err != nil {
		return nil, translate(err)
	}
	return &refund, nil
}

func (r *refundRepository) List(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error) {
	query := refundSelect + ` ORDER BY r.created_at DESC, r.id DESC`
	var args []any
	if status != nil {
		query = refundSelect + ` WHERE r.status=$1 ORDER BY r.created_at DESC, r.id DESC`
		args = append(args, *status)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Refund
	for rows.Next() {
		var refund model.Refund
		if err := rows.Scan(refundDest(&refund)...); err != nil {
			return nil, err
		}
		result = append(result, refund)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Approve stamps the gateway reference on a pending refund.
func (r *refundRepository) Approve(ctx context.Context, id int64, reference, note string) (*model.Refund, error) {
	const query = `UPDATE refunds SET status=$1, reference=$2, admin_note=$3, updated_at=NOW() WHERE id=$4 AND status=$5`
	tag, err := r.storage.pool.Exec(ctx, query, model.RefundStatusApproved, reference, note, id, model.RefundStatusPending)
	if err := expectAffected(tag, err, domainErrors.ErrRefundNotAllowed); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *refundRepository) Reject(ctx context.Context, id int64, note string) (*model.Refund, error) {
	const query = `UPDATE refunds SET status=$1, admin_note=$2, updated_at=NOW() WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.RefundStatusRejected, note, id, model.RefundStatusPending)
	if err := expectAffected(tag, err, domainErrors.ErrRefundNotAllowed); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *refundRepository) SetExternalID(ctx context.Context, id int64, externalID string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE refunds SET external_id=$1, updated_at=NOW() WHERE id=$2`, externalID, id)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func (r *refundRepository) MarkFailed(ctx context.Context, id int64, code, reason string) error {
	const query = `UPDATE refunds SET status=$1, failure_code=$2, failure_reason=$3, updated_at=NOW() WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.RefundStatusFailed, code, reason, id)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

// Settle locks refund, payment and order rows and applies the decided outcome.
func (r *refundRepository) Settle(ctx context.Context, reference string, decide repository.RefundDecision) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + refundColumns + `, ` + paymentColumns + `, ` + orderColumns + `
                           FROM refunds r
                           JOIN payments pm ON pm.id = r.payment_id
                           JOIN orders o ON o.id = r.order_id
                           WHERE r.reference=$1
                           FOR UPDATE`
		var (
			refund  model.Refund
			payment model.Payment
			order   model.Order
		)
		dest := append(refundDest(&refund), paymentDest(&payment)...)
		dest = append(dest, orderDest(&order)...)
		if err := tx.QueryRow(ctx, lockQuery, reference).Scan(dest...); err != nil {
			return translate(err)
		}

		settlement, err := decide(refund, payment, order)
		if err != nil {
			return err
		}
		if settlement == nil {
			return nil
		}

		const updateRefund = `UPDATE refunds SET status=$1, failure_code=$2, failure_reason=$3, updated_at=NOW() WHERE id=$4`
		if _, err := tx.Exec(ctx, updateRefund, settlement.RefundStatus, settlement.FailureCode, settlement.FailureReason, refund.ID); err != nil {
			return err
		}

		if settlement.PaymentStatus != nil {
			const updatePayment = `UPDATE payments SET status=$1, updated_at=NOW() WHERE id=$2`
			if _, err := tx.Exec(ctx, updatePayment, *settlement.PaymentStatus, payment.ID); err != nil {
				return err
			}
		}
		if settlement.OrderStatus != nil {
			const updateOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
			if _, err := tx.Exec(ctx, updateOrder, *settlement.OrderStatus, order.ID); err != nil {
				return err
			}
		}

		if settlement.RestoreStock {
			return restoreStock(ctx, tx, order.ID)
		}
		return nil
	})
}
