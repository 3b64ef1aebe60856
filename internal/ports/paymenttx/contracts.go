package paymenttx

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
)

// Repository is the transactional scope of a payment confirmation: the parcel
// update and the payment insert must commit or roll back together.
type Repository interface {
	MarkParcelPaid(ctx context.Context, parcelID int64, trackingID string) (int64, error)
	InsertPayment(ctx context.Context, p *domain.Payment) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
