package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapshift/parcel-service/internal/domain"
)

// ParcelRepo represents parcel repository.
type ParcelRepo struct{ db *pgxpool.Pool }

// NewParcelRepo creates a new ParcelRepo.
func NewParcelRepo(db *pgxpool.Pool) *ParcelRepo { return &ParcelRepo{db: db} }

const parcelColumns = `id, sender_email, name, cost_cents, payment_status, delivery_status, COALESCE(tracking_id, ''), created_at`

func scanParcel(row interface{ Scan(...any) error }) (*domain.Parcel, error) {
	var p domain.Parcel
	err := row.Scan(&p.ID, &p.SenderEmail, &p.Name, &p.CostCents,
		&p.PaymentStatus, &p.DeliveryStatus, &p.TrackingID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns parcels newest first, optionally filtered by sender email and
// delivery status.
func (r *ParcelRepo) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	q := `SELECT ` + parcelColumns + ` FROM parcels`
	args := make([]any, 0, 2)
	where := ""
	if f.SenderEmail != nil {
		args = append(args, *f.SenderEmail)
		where = fmt.Sprintf(" WHERE sender_email = $%d", len(args))
	}
	if f.DeliveryStatus != nil {
		args = append(args, *f.DeliveryStatus)
		if where == "" {
			where = fmt.Sprintf(" WHERE delivery_status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND delivery_status = $%d", len(args))
		}
	}
	q += where + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	defer rows.Close()

	var out []domain.Parcel
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Get returns a parcel by its id, or nil when absent.
func (r *ParcelRepo) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	p, err := scanParcel(r.db.QueryRow(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a new parcel.
func (r *ParcelRepo) Create(ctx context.Context, p *domain.Parcel) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO parcels(sender_email, name, cost_cents, payment_status, delivery_status, created_at)
        VALUES($1,$2,$3,$4,$5,$6)
        RETURNING id
    `, p.SenderEmail, p.Name, p.CostCents, p.PaymentStatus, p.DeliveryStatus, p.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create parcel: %w", err)
	}
	return id, nil
}

// Delete removes a parcel by id and returns the number of deleted rows.
func (r *ParcelRepo) Delete(ctx context.Context, id int64) (int64, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM parcels WHERE id=$1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete parcel %d: %w", id, err)
	}
	return ct.RowsAffected(), nil
}
