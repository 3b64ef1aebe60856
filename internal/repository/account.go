package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
)

// AccountRepo represents account repository.
type AccountRepo struct{ db *pgxpool.Pool }

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account. Returns apperr.ErrConflict when an account
// with the same email already exists.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts(email, name, role, created_at) VALUES($1,$2,$3,$4) RETURNING id`,
		a.Email, a.Name, a.Role, a.CreatedAt).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

// GetByEmail returns the account for an email, or nil when absent.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, role, created_at FROM accounts WHERE email=$1`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account %q: %w", email, err)
	}
	return &a, nil
}

// Search returns accounts whose name or email contains text
// (case-insensitive), newest first, capped at limit.
func (r *AccountRepo) Search(ctx context.Context, text string, limit int) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, email, name, role, created_at
        FROM accounts
        WHERE email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC
        LIMIT $2
    `, text, limit)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Account, 0, limit)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateRole sets an account's role by id and returns true if a row was affected.
func (r *AccountRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE accounts SET role=$2 WHERE id=$1`, id, role)
	if err != nil {
		return false, fmt.Errorf("update account role %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
