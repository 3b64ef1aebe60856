package parcel

import (
	"context"
	"strings"
	"time"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
)

// Service coordinates parcel business logic and orchestrates repository calls.
type Service struct {
	repo             parcelRepository
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a parcel Service.
func NewService(r parcelRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(p *domain.Parcel) error {
	if p == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidateEmail(p.SenderEmail) {
		return apperr.ErrInvalid
	}
	if p.CostCents <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// List returns parcels newest first with optional sender/status filters.
func (s *Service) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// Get retrieves a parcel by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// Create persists a new unpaid parcel, stamping the creation time server-side,
// and returns its generated ID.
func (s *Service) Create(ctx context.Context, p *domain.Parcel) (int64, error) {
	if err := validateCreate(p); err != nil {
		return 0, err
	}
	p.SenderEmail = strings.ToLower(strings.TrimSpace(p.SenderEmail))
	p.PaymentStatus = domain.PaymentUnpaid
	p.DeliveryStatus = ""
	p.TrackingID = ""
	p.CreatedAt = s.now()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, p)
}

// Delete removes a parcel and returns the number of deleted rows. Zero is not
// an error: callers inspect the count.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Delete(ctx, id)
}
