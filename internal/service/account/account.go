package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
)

// searchLimit caps search results the way the dashboard expects them.
const searchLimit = 10

// Service coordinates account business logic and orchestrates repository calls.
type Service struct {
	repo             accountRepository
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures an account Service.
func NewService(r accountRepository, timeout time.Duration) *Service {
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

// RegisterResult reports whether a registration created a new account.
type RegisterResult struct {
	ID      int64
	Created bool
}

// Register creates an account for the email with the default role. Repeat
// registration for an existing email is a no-op, not an error.
func (s *Service) Register(ctx context.Context, email, name string) (RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !domain.ValidateEmail(email) {
		return RegisterResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return RegisterResult{}, err
	}
	if existing != nil {
		return RegisterResult{ID: existing.ID, Created: false}, nil
	}

	id, err := s.repo.Create(ctx, &domain.Account{
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      domain.RoleUser,
		CreatedAt: s.now(),
	})
	if errors.Is(err, apperr.ErrConflict) {
		// lost the race to a concurrent registration; same no-op outcome
		existing, err = s.repo.GetByEmail(ctx, email)
		if err != nil {
			return RegisterResult{}, err
		}
		if existing != nil {
			return RegisterResult{ID: existing.ID, Created: false}, nil
		}
		return RegisterResult{}, apperr.ErrConflict
	}
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{ID: id, Created: true}, nil
}

// Search returns accounts matching text by name or email, newest first.
func (s *Service) Search(ctx context.Context, text string) ([]domain.Account, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Search(ctx, text, searchLimit)
}

// SetRole sets an account's role.
func (s *Service) SetRole(ctx context.Context, id int64, role domain.Role) error {
	if id <= 0 || !role.Valid() {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// RoleByEmail returns the account's role, defaulting to user when no account
// exists for the email.
func (s *Service) RoleByEmail(ctx context.Context, email string) (domain.Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if a == nil {
		return domain.RoleUser, nil
	}
	return a.Role, nil
}
