package ridertx

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
)

// Repository is the transactional scope of an application decision: the status
// change and the account promotion must commit or roll back together.
type Repository interface {
	ApplicationForUpdate(ctx context.Context, id int64) (*domain.RiderApplication, error)
	SetDecision(ctx context.Context, id int64, status domain.ApplicationStatus, work domain.WorkStatus) error
	SetAccountRoleByEmail(ctx context.Context, email string, role domain.Role) (int64, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
