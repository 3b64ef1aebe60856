package parcel

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
)

// parcelRepository defines storage operations required by the business layer.
type parcelRepository interface {
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	Create(ctx context.Context, p *domain.Parcel) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
