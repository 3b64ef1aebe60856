package payment

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/gateway/checkout"
	"github.com/zapshift/parcel-service/internal/ports/paymenttx"
)

// paymentStore defines storage operations required by the lifecycle engine.
// The transactional runner and the plain reads are implemented by the same
// repository.
type paymentStore interface {
	paymenttx.Runner
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
	ByTransactionID(ctx context.Context, txID string) (*domain.Payment, error)
}

type parcelGetter interface {
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
}

type checkoutGateway interface {
	CreateSession(ctx context.Context, p checkout.CreateSessionParams) (*checkout.Session, error)
	GetSession(ctx context.Context, id string) (*checkout.Session, error)
}

type counter interface {
	Inc()
}
