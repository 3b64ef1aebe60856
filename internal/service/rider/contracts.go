package rider

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/ports/ridertx"
)

// riderStore defines storage operations required by the onboarding workflow.
type riderStore interface {
	ridertx.Runner
	Create(ctx context.Context, a *domain.RiderApplication) (int64, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.RiderApplication, error)
}
