package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/ports/paymenttx"
)

// PaymentRepo represents payment record repository.
type PaymentRepo struct {
	db *pgxpool.Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `id, transaction_id, parcel_id, parcel_name, payer_email, amount_cents, currency, status, tracking_id, paid_at`

type row interface{ Scan(...any) error }

func scanPayment(r row) (*domain.Payment, error) {
	var p domain.Payment
	err := r.Scan(&p.ID, &p.TransactionID, &p.ParcelID, &p.ParcelName, &p.PayerEmail,
		&p.AmountCents, &p.Currency, &p.Status, &p.TrackingID, &p.PaidAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByEmail returns payment records for a payer email, newest first.
func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payer_email=$1 ORDER BY paid_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("list payments for %q: %w", email, err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ByTransactionID returns the payment record for a provider transaction id,
// or nil when absent.
func (r *PaymentRepo) ByTransactionID(ctx context.Context, txID string) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id=$1`, txID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by transaction %q: %w", txID, err)
	}
	return p, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *PaymentRepo) WithTx(ctx context.Context, fn func(tx paymenttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &PaymentTxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// PaymentTxRepo represents the transactional payment confirmation scope.
type PaymentTxRepo struct {
	tx pgx.Tx
}

// MarkParcelPaid stamps the paid status, pending-pickup delivery status and
// the tracking id on a parcel. Returns the number of matched rows; zero means
// the parcel referenced by the session no longer exists.
func (r *PaymentTxRepo) MarkParcelPaid(ctx context.Context, parcelID int64, trackingID string) (int64, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE parcels
        SET payment_status = $2,
            delivery_status = $3,
            tracking_id = $4
        WHERE id = $1
    `, parcelID, domain.PaymentPaid, domain.DeliveryPendingPickup, trackingID)
	if err != nil {
		return 0, fmt.Errorf("mark parcel %d paid: %w", parcelID, err)
	}
	return ct.RowsAffected(), nil
}

// InsertPayment inserts a payment record. The UNIQUE constraint on
// transaction_id turns a concurrent duplicate into apperr.ErrConflict.
func (r *PaymentTxRepo) InsertPayment(ctx context.Context, p *domain.Payment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO payments(transaction_id, parcel_id, parcel_name, payer_email, amount_cents, currency, status, tracking_id, paid_at)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id
    `, p.TransactionID, p.ParcelID, p.ParcelName, p.PayerEmail,
		p.AmountCents, p.Currency, p.Status, p.TrackingID, p.PaidAt).Scan(&p.ID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert payment %q: %w", p.TransactionID, err)
	}
	return nil
}
