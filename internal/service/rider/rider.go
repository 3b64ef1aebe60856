// Package rider owns the courier onboarding workflow:
// pending to approved or rejected, with account promotion on approval.
package rider

import (
	"context"
	"strings"
	"time"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
	"github.com/zapshift/parcel-service/internal/ports/ridertx"
)

// Service coordinates rider application business logic.
type Service struct {
	store            riderStore
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a rider Service.
func NewService(store riderStore, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		store:            store,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateApply(a *domain.RiderApplication) error {
	if a == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(a.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidateEmail(a.Email) {
		return apperr.ErrInvalid
	}
	return nil
}

// Apply submits a new application in the pending state.
func (s *Service) Apply(ctx context.Context, a *domain.RiderApplication) (int64, error) {
	if err := validateApply(a); err != nil {
		return 0, err
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Status = domain.ApplicationPending
	a.WorkStatus = ""
	a.CreatedAt = s.now()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Create(ctx, a)
}

// List returns applications newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.RiderApplication, error) {
	if status != nil && !status.Decision() && *status != domain.ApplicationPending {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx, status)
}

// DecideResult reports the outcome of an administrator decision.
type DecideResult struct {
	Status domain.ApplicationStatus
	// Promoted is true when an account existed for the applicant email and
	// its role was set to rider.
	Promoted bool
}

// Decide applies an administrator decision. Only pending applications can be
// decided; approval also promotes the applicant's account to the rider role,
// in the same transaction as the status change.
func (s *Service) Decide(ctx context.Context, d domain.RiderDecision) (DecideResult, error) {
	if d.ID <= 0 || !d.Status.Decision() {
		return DecideResult{}, apperr.ErrInvalid
	}
	approve := d.Status == domain.ApplicationApproved
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if approve && !domain.ValidateEmail(email) {
		return DecideResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var promoted bool
	err := s.store.WithTx(ctx, func(tx ridertx.Repository) error {
		app, err := tx.ApplicationForUpdate(ctx, d.ID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperr.ErrNotFound
		}
		if app.Status != domain.ApplicationPending {
			return apperr.ErrConflict
		}

		work := domain.WorkStatus("")
		if approve {
			work = domain.WorkAvailable
		}
		if err := tx.SetDecision(ctx, d.ID, d.Status, work); err != nil {
			return err
		}
		if approve {
			matched, err := tx.SetAccountRoleByEmail(ctx, email, domain.RoleRider)
			if err != nil {
				return err
			}
			promoted = matched > 0
		}
		return nil
	})
	if err != nil {
		return DecideResult{}, err
	}

	s.logger.Info("rider application decided",
		logx.Int64("application_id", d.ID),
		logx.String("status", string(d.Status)),
		logx.Any("promoted", promoted),
	)
	return DecideResult{Status: d.Status, Promoted: promoted}, nil
}
