//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/ports/ridertx"
	"github.com/zapshift/parcel-service/internal/repository"
)

type RiderRepositorySuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *repository.RiderRepo
	accounts *repository.AccountRepo
}

func (s *RiderRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewRiderRepo(tcPool)
	s.accounts = repository.NewAccountRepo(tcPool)
}

func (s *RiderRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE riders, accounts RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RiderRepositorySuite) newApplication(email string, at time.Time) *domain.RiderApplication {
	return &domain.RiderApplication{
		Name:      "Dana",
		Email:     email,
		Phone:     "+15550001111",
		Region:    "Dhaka",
		District:  "Gulshan",
		Status:    domain.ApplicationPending,
		CreatedAt: at,
	}
}

func (s *RiderRepositorySuite) TestCreateAndList() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, s.newApplication("dana@example.com", time.Now().UTC()))
	s.Require().NoError(err)

	got, err := s.repo.List(ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(got, 1)

	s.Equal(id, got[0].ID)
	s.Equal("dana@example.com", got[0].Email)
	s.Equal(domain.ApplicationPending, got[0].Status)
	s.Equal(domain.WorkStatus(""), got[0].WorkStatus)
}

func (s *RiderRepositorySuite) TestListByStatus() {
	ctx := context.Background()

	base := time.Now().UTC()
	pendingID, err := s.repo.Create(ctx, s.newApplication("dana@example.com", base))
	s.Require().NoError(err)
	approvedID, err := s.repo.Create(ctx, s.newApplication("erin@example.com", base.Add(time.Second)))
	s.Require().NoError(err)

	err = s.repo.WithTx(ctx, func(tx ridertx.Repository) error {
		return tx.SetDecision(ctx, approvedID, domain.ApplicationApproved, domain.WorkAvailable)
	})
	s.Require().NoError(err)

	pending := domain.ApplicationPending
	got, err := s.repo.List(ctx, &pending)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(pendingID, got[0].ID)

	approved := domain.ApplicationApproved
	got, err = s.repo.List(ctx, &approved)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(approvedID, got[0].ID)
	s.Equal(domain.WorkAvailable, got[0].WorkStatus)
}

func (s *RiderRepositorySuite) TestApplicationForUpdate() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, s.newApplication("dana@example.com", time.Now().UTC()))
	s.Require().NoError(err)

	err = s.repo.WithTx(ctx, func(tx ridertx.Repository) error {
		got, err := tx.ApplicationForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(id, got.ID)
		s.Equal(domain.ApplicationPending, got.Status)

		missing, err := tx.ApplicationForUpdate(ctx, 9999)
		s.Require().NoError(err)
		s.Nil(missing)
		return nil
	})
	s.Require().NoError(err)
}

func (s *RiderRepositorySuite) TestDecidePromotesAccount() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, s.newApplication("dana@example.com", time.Now().UTC()))
	s.Require().NoError(err)

	_, err = s.accounts.Create(ctx, &domain.Account{
		Email:     "dana@example.com",
		Name:      "Dana",
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)

	err = s.repo.WithTx(ctx, func(tx ridertx.Repository) error {
		if err := tx.SetDecision(ctx, id, domain.ApplicationApproved, domain.WorkAvailable); err != nil {
			return err
		}
		matched, err := tx.SetAccountRoleByEmail(ctx, "dana@example.com", domain.RoleRider)
		s.Require().NoError(err)
		s.Equal(int64(1), matched)
		return nil
	})
	s.Require().NoError(err)

	acc, err := s.accounts.GetByEmail(ctx, "dana@example.com")
	s.Require().NoError(err)
	s.Equal(domain.RoleRider, acc.Role)
}

func (s *RiderRepositorySuite) TestSetAccountRoleByEmail_NoAccount() {
	ctx := context.Background()

	err := s.repo.WithTx(ctx, func(tx ridertx.Repository) error {
		matched, err := tx.SetAccountRoleByEmail(ctx, "nobody@example.com", domain.RoleRider)
		s.Require().NoError(err)
		s.Equal(int64(0), matched)
		return nil
	})
	s.Require().NoError(err)
}

func TestRiderRepositorySuite(t *testing.T) {
	suite.Run(t, new(RiderRepositorySuite))
}
