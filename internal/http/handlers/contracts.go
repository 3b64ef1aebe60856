package handlers

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/service/account"
	"github.com/zapshift/parcel-service/internal/service/payment"
	"github.com/zapshift/parcel-service/internal/service/rider"
)

type parcelUsecase interface {
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	Create(ctx context.Context, p *domain.Parcel) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type paymentUsecase interface {
	CreateCheckout(ctx context.Context, parcelID int64) (string, error)
	Confirm(ctx context.Context, sessionID string) (payment.ConfirmResult, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

type accountUsecase interface {
	Register(ctx context.Context, email, name string) (account.RegisterResult, error)
	Search(ctx context.Context, text string) ([]domain.Account, error)
	SetRole(ctx context.Context, id int64, role domain.Role) error
	RoleByEmail(ctx context.Context, email string) (domain.Role, error)
}

type riderUsecase interface {
	Apply(ctx context.Context, a *domain.RiderApplication) (int64, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.RiderApplication, error)
	Decide(ctx context.Context, d domain.RiderDecision) (rider.DecideResult, error)
}
