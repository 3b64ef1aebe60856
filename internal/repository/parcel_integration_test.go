//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/repository"
)

type ParcelRepositorySuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.ParcelRepo
}

func (s *ParcelRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewParcelRepo(tcPool)
}

func (s *ParcelRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE parcels RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *ParcelRepositorySuite) newParcel(email string, at time.Time) *domain.Parcel {
	return &domain.Parcel{
		SenderEmail:    email,
		Name:           "Books",
		CostCents:      1500,
		PaymentStatus:  domain.PaymentUnpaid,
		DeliveryStatus: "",
		CreatedAt:      at,
	}
}

func (s *ParcelRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	in := s.newParcel("dana@example.com", time.Now().UTC())

	id, err := s.repo.Create(ctx, in)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(id, got.ID)
	s.Equal(in.SenderEmail, got.SenderEmail)
	s.Equal(in.Name, got.Name)
	s.Equal(in.CostCents, got.CostCents)
	s.Equal(domain.PaymentUnpaid, got.PaymentStatus)
	s.Equal("", got.TrackingID, "tracking id is empty until payment is confirmed")
}

func (s *ParcelRepositorySuite) TestGetNotFound() {
	ctx := context.Background()

	got, err := s.repo.Get(ctx, 9999)
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *ParcelRepositorySuite) TestListFilters() {
	ctx := context.Background()

	base := time.Now().UTC()
	_, err := s.repo.Create(ctx, s.newParcel("dana@example.com", base))
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, s.newParcel("dana@example.com", base.Add(time.Second)))
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, s.newParcel("erin@example.com", base.Add(2*time.Second)))
	s.Require().NoError(err)

	all, err := s.repo.List(ctx, domain.ParcelFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	// newest first
	s.Equal("erin@example.com", all[0].SenderEmail)

	email := "dana@example.com"
	mine, err := s.repo.List(ctx, domain.ParcelFilter{SenderEmail: &email})
	s.Require().NoError(err)
	s.Len(mine, 2)
	for _, p := range mine {
		s.Equal(email, p.SenderEmail)
	}

	status := domain.DeliveryPendingPickup
	none, err := s.repo.List(ctx, domain.ParcelFilter{DeliveryStatus: &status})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ParcelRepositorySuite) TestDelete() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, s.newParcel("dana@example.com", time.Now().UTC()))
	s.Require().NoError(err)

	n, err := s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Nil(got)

	n, err = s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(0), n)
}

func TestParcelRepositorySuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositorySuite))
}
