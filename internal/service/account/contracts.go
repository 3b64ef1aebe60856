package account

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
)

// accountRepository defines storage operations required by the business layer.
type accountRepository interface {
	Create(ctx context.Context, a *domain.Account) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Search(ctx context.Context, text string, limit int) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (bool, error)
}
