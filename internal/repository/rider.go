package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/ports/ridertx"
)

// RiderRepo represents rider application repository.
type RiderRepo struct{ db *pgxpool.Pool }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *pgxpool.Pool) *RiderRepo { return &RiderRepo{db: db} }

const riderColumns = `id, name, email, phone, region, district, status, work_status, created_at`

func scanRider(r row) (*domain.RiderApplication, error) {
	var a domain.RiderApplication
	err := r.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Region, &a.District,
		&a.Status, &a.WorkStatus, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new pending application.
func (r *RiderRepo) Create(ctx context.Context, a *domain.RiderApplication) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO riders(name, email, phone, region, district, status, work_status, created_at)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id
    `, a.Name, a.Email, a.Phone, a.Region, a.District, a.Status, a.WorkStatus, a.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create rider application: %w", err)
	}
	return id, nil
}

// List returns applications newest first, optionally filtered by status.
func (r *RiderRepo) List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.RiderApplication, error) {
	q := `SELECT ` + riderColumns + ` FROM riders`
	args := make([]any, 0, 1)
	if status != nil {
		q += ` WHERE status = $1`
		args = append(args, *status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list rider applications: %w", err)
	}
	defer rows.Close()

	var out []domain.RiderApplication
	for rows.Next() {
		a, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// WithTx opens a transaction and executes fn within it.
func (r *RiderRepo) WithTx(ctx context.Context, fn func(tx ridertx.Repository) error) (err error) {
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

	wrapped := &RiderTxRepo{tx: tx}

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

// RiderTxRepo represents the transactional application decision scope.
type RiderTxRepo struct {
	tx pgx.Tx
}

// ApplicationForUpdate locks and returns an application row, or nil when absent.
func (r *RiderTxRepo) ApplicationForUpdate(ctx context.Context, id int64) (*domain.RiderApplication, error) {
	a, err := scanRider(r.tx.QueryRow(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider application %d: %w", id, err)
	}
	return a, nil
}

// SetDecision stores the administrator decision on an application.
func (r *RiderTxRepo) SetDecision(ctx context.Context, id int64, status domain.ApplicationStatus, work domain.WorkStatus) error {
	ct, err := r.tx.Exec(ctx,
		`UPDATE riders SET status=$2, work_status=$3 WHERE id=$1`, id, status, work)
	if err != nil {
		return fmt.Errorf("set decision on application %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("rider application %d not found", id)
	}
	return nil
}

// SetAccountRoleByEmail sets the role on the account with the given email and
// returns the number of matched rows.
func (r *RiderTxRepo) SetAccountRoleByEmail(ctx context.Context, email string, role domain.Role) (int64, error) {
	ct, err := r.tx.Exec(ctx,
		`UPDATE accounts SET role=$2 WHERE email=$1`, email, role)
	if err != nil {
		return 0, fmt.Errorf("promote account %q: %w", email, err)
	}
	return ct.RowsAffected(), nil
}
