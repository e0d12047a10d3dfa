package repository

import (
	"context"
	"errors"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CreatePending inserts the correlation record for a new payment attempt.
func (r *PaymentRepository) CreatePending(ctx context.Context, p *model.Payment) (int64, error) {
	var paymentID int64
	q := `
		INSERT INTO payments
			(orderid, amount, currency, status, provider, sessionid, payload, created_at)
		VALUES
			($1, $2, $3, 'pending', $4, $5, $6, NOW())
		RETURNING paymentid
	`
	err := r.DB.QueryRow(ctx, q,
		p.OrderID, p.Amount, p.Currency, p.Provider, p.SessionID, p.Payload,
	).Scan(&paymentID)
	return paymentID, err
}

// GetBySessionID returns the payment attempt for a gateway session (= order
// number), or (nil, nil) when none exists.
func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	var p model.Payment
	q := `
		SELECT paymentid, orderid, amount, currency, status, provider,
		       sessionid, gatewayorderid, payload, created_at, paidat
		FROM payments
		WHERE sessionid=$1
		ORDER BY paymentid DESC
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, q, sessionID).Scan(
		&p.PaymentID, &p.OrderID, &p.Amount, &p.Currency, &p.Status, &p.Provider,
		&p.SessionID, &p.GatewayOrderID, &p.Payload, &p.CreatedAt, &p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FinalizePaid flips the payment and its order to paid in one transaction.
// Both updates are guarded on the pending state, so a concurrent or
// redelivered notification cannot double-advance either row.
func (r *PaymentRepository) FinalizePaid(ctx context.Context, orderID int64, gatewayOrderID string, payload []byte) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET status='paid', gatewayorderid=$2, payload=$3, paidat=NOW()
		WHERE orderid=$1 AND status='pending'
	`, orderID, gatewayOrderID, payload)
	if err != nil {
		return err
	}

	// paymentstatus records the money regardless, but fulfilment only
	// advances from new; a cancelled order must stay cancelled even if
	// the customer's transfer lands afterwards
	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET paymentstatus='paid',
		    status = CASE WHEN status='new' THEN 'paid' ELSE status END
		WHERE orderid=$1 AND paymentstatus='pending'
	`, orderID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FinalizeFailed flips the payment and its order to the given terminal
// failure state (failed or cancelled) in one transaction.
func (r *PaymentRepository) FinalizeFailed(ctx context.Context, orderID int64, status model.PaymentStatus, payload []byte) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET status=$2, payload=$3
		WHERE orderid=$1 AND status='pending'
	`, orderID, status, payload)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET paymentstatus=$2
		WHERE orderid=$1 AND paymentstatus='pending'
	`, orderID, status)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
