package payment_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/gateway/checkout"
	"github.com/zapshift/parcel-service/internal/logx"
	"github.com/zapshift/parcel-service/internal/ports/paymenttx"
	"github.com/zapshift/parcel-service/internal/service/payment"
)

type stubTx struct {
	markFn   func(context.Context, int64, string) (int64, error)
	insertFn func(context.Context, *domain.Payment) error
}

func (s *stubTx) MarkParcelPaid(ctx context.Context, parcelID int64, trackingID string) (int64, error) {
	if s.markFn == nil {
		return 1, nil
	}
	return s.markFn(ctx, parcelID, trackingID)
}

func (s *stubTx) InsertPayment(ctx context.Context, p *domain.Payment) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, p)
}

type stubStore struct {
	tx     *stubTx
	listFn func(context.Context, string) ([]domain.Payment, error)
	byTxFn func(context.Context, string) (*domain.Payment, error)
}

func (s *stubStore) WithTx(ctx context.Context, fn func(tx paymenttx.Repository) error) error {
	return fn(s.tx)
}

func (s *stubStore) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, email)
}

func (s *stubStore) ByTransactionID(ctx context.Context, txID string) (*domain.Payment, error) {
	if s.byTxFn == nil {
		return nil, nil
	}
	return s.byTxFn(ctx, txID)
}

type stubParcels struct {
	getFn func(context.Context, int64) (*domain.Parcel, error)
}

func (s *stubParcels) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

type stubGateway struct {
	createFn func(context.Context, checkout.CreateSessionParams) (*checkout.Session, error)
	getFn    func(context.Context, string) (*checkout.Session, error)
}

func (s *stubGateway) CreateSession(ctx context.Context, p checkout.CreateSessionParams) (*checkout.Session, error) {
	if s.createFn == nil {
		return nil, errors.New("stubGateway: CreateSession not configured")
	}
	return s.createFn(ctx, p)
}

func (s *stubGateway) GetSession(ctx context.Context, id string) (*checkout.Session, error) {
	if s.getFn == nil {
		return nil, errors.New("stubGateway: GetSession not configured")
	}
	return s.getFn(ctx, id)
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

type recordingPublisher struct {
	events []domain.ParcelEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ParcelEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

var testCfg = payment.Config{Currency: "usd", SiteDomain: "https://zap.example.com"}

func newTestService(store *stubStore, parcels *stubParcels, gw *stubGateway, pub *recordingPublisher, c *countingCounter) *payment.Service {
	return payment.NewService(store, parcels, gw, pub, logx.Nop(), c, testCfg, time.Second)
}

func TestCreateCheckout_Success(t *testing.T) {
	t.Parallel()

	parcels := &stubParcels{
		getFn: func(_ context.Context, id int64) (*domain.Parcel, error) {
			return &domain.Parcel{ID: id, Name: "Books", SenderEmail: "dana@example.com", CostCents: 2500}, nil
		},
	}
	gw := &stubGateway{
		createFn: func(_ context.Context, p checkout.CreateSessionParams) (*checkout.Session, error) {
			require.Equal(t, int64(2500), p.AmountCents)
			require.Equal(t, "usd", p.Currency)
			require.Equal(t, "Books", p.ProductName)
			require.Equal(t, "dana@example.com", p.CustomerEmail)
			require.Equal(t, "1", p.ParcelID)
			require.True(t, strings.HasPrefix(p.SuccessURL, "https://zap.example.com/"))
			require.Contains(t, p.SuccessURL, "{CHECKOUT_SESSION_ID}")
			return &checkout.Session{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil
		},
	}
	svc := newTestService(&stubStore{tx: &stubTx{}}, parcels, gw, &recordingPublisher{}, &countingCounter{})

	url, err := svc.CreateCheckout(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com/cs_1", url)
}

func TestCreateCheckout_ParcelMissing(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubStore{tx: &stubTx{}}, &stubParcels{}, &stubGateway{}, &recordingPublisher{}, &countingCounter{})

	_, err := svc.CreateCheckout(context.Background(), 77)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func paidSession() *checkout.Session {
	return &checkout.Session{
		ID:            "cs_1",
		PaymentStatus: checkout.SessionPaid,
		PaymentIntent: "pi_123",
		AmountTotal:   2500,
		Currency:      "usd",
		CustomerEmail: "Dana@Example.com",
		Metadata:      map[string]string{"parcelId": "8", "parcelName": "Books"},
	}
}

func TestConfirm_RecordsPayment(t *testing.T) {
	t.Parallel()

	var inserted *domain.Payment
	var markedParcel int64
	var markedTracking string
	tx := &stubTx{
		markFn: func(_ context.Context, parcelID int64, trackingID string) (int64, error) {
			markedParcel = parcelID
			markedTracking = trackingID
			return 1, nil
		},
		insertFn: func(_ context.Context, p *domain.Payment) error {
			inserted = p
			return nil
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, id string) (*checkout.Session, error) {
			require.Equal(t, "cs_1", id)
			return paidSession(), nil
		},
	}
	pub := &recordingPublisher{}
	counter := &countingCounter{}
	svc := newTestService(&stubStore{tx: tx}, &stubParcels{}, gw, pub, counter)

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.False(t, res.AlreadyProcessed)
	require.Equal(t, "pi_123", res.TransactionID)
	require.Equal(t, int64(1), res.MatchedParcels)
	require.True(t, strings.HasPrefix(res.TrackingID, "ZSP-"))

	require.Equal(t, int64(8), markedParcel)
	require.Equal(t, res.TrackingID, markedTracking)

	require.NotNil(t, inserted)
	require.Equal(t, "pi_123", inserted.TransactionID)
	require.Equal(t, int64(8), inserted.ParcelID)
	require.Equal(t, "Books", inserted.ParcelName)
	require.Equal(t, "dana@example.com", inserted.PayerEmail)
	require.Equal(t, int64(2500), inserted.AmountCents)
	require.Equal(t, res.TrackingID, inserted.TrackingID)

	require.Equal(t, 1, counter.n)
	require.Len(t, pub.events, 1)
	require.Equal(t, domain.EventPaymentConfirmed, pub.events[0].Kind)
	require.Equal(t, int64(8), pub.events[0].ParcelID)
}

func TestConfirm_DuplicateIsIdempotent(t *testing.T) {
	t.Parallel()

	prior := &domain.Payment{TransactionID: "pi_123", TrackingID: "ZSP-20250101-AABBCCDDEEFF"}
	store := &stubStore{
		tx: &stubTx{
			insertFn: func(context.Context, *domain.Payment) error {
				t.Fatal("insert must not run for a recorded transaction")
				return nil
			},
		},
		byTxFn: func(_ context.Context, txID string) (*domain.Payment, error) {
			require.Equal(t, "pi_123", txID)
			return prior, nil
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return paidSession(), nil
		},
	}
	pub := &recordingPublisher{}
	counter := &countingCounter{}
	svc := newTestService(store, &stubParcels{}, gw, pub, counter)

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.AlreadyProcessed)
	require.Equal(t, prior.TrackingID, res.TrackingID)
	require.Zero(t, counter.n)
	require.Empty(t, pub.events)
}

func TestConfirm_ConcurrentInsertLosesGracefully(t *testing.T) {
	t.Parallel()

	prior := &domain.Payment{TransactionID: "pi_123", TrackingID: "ZSP-20250101-AABBCCDDEEFF"}
	calls := 0
	store := &stubStore{
		tx: &stubTx{
			insertFn: func(context.Context, *domain.Payment) error {
				return apperr.ErrConflict
			},
		},
		byTxFn: func(_ context.Context, txID string) (*domain.Payment, error) {
			calls++
			if calls == 1 {
				// pre-check: nothing recorded yet
				return nil, nil
			}
			return prior, nil
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return paidSession(), nil
		},
	}
	svc := newTestService(store, &stubParcels{}, gw, &recordingPublisher{}, &countingCounter{})

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.AlreadyProcessed)
	require.Equal(t, prior.TrackingID, res.TrackingID)
}

func TestConfirm_UnpaidSessionRecordsNothing(t *testing.T) {
	t.Parallel()

	sess := paidSession()
	sess.PaymentStatus = "unpaid"
	store := &stubStore{
		tx: &stubTx{
			insertFn: func(context.Context, *domain.Payment) error {
				t.Fatal("insert must not run for an unpaid session")
				return nil
			},
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return sess, nil
		},
	}
	svc := newTestService(store, &stubParcels{}, gw, &recordingPublisher{}, &countingCounter{})

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.False(t, res.AlreadyProcessed)
	require.Empty(t, res.TrackingID)
	require.Zero(t, res.MatchedParcels)
}

func TestConfirm_MissingParcelReference(t *testing.T) {
	t.Parallel()

	sess := paidSession()
	sess.Metadata = map[string]string{}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return sess, nil
		},
	}
	svc := newTestService(&stubStore{tx: &stubTx{}}, &stubParcels{}, gw, &recordingPublisher{}, &countingCounter{})

	_, err := svc.Confirm(context.Background(), "cs_1")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestConfirm_PaidSessionWithoutTransactionID(t *testing.T) {
	t.Parallel()

	sess := paidSession()
	sess.PaymentIntent = ""
	store := &stubStore{
		tx: &stubTx{
			insertFn: func(context.Context, *domain.Payment) error {
				t.Fatal("insert must not run without a transaction id")
				return nil
			},
		},
		byTxFn: func(context.Context, string) (*domain.Payment, error) {
			t.Fatal("lookup must not run without a transaction id")
			return nil, nil
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return sess, nil
		},
	}
	svc := newTestService(store, &stubParcels{}, gw, &recordingPublisher{}, &countingCounter{})

	_, err := svc.Confirm(context.Background(), "cs_1")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestConfirm_DeletedParcelStillRecords(t *testing.T) {
	t.Parallel()

	tx := &stubTx{
		markFn: func(context.Context, int64, string) (int64, error) {
			return 0, nil
		},
	}
	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return paidSession(), nil
		},
	}
	svc := newTestService(&stubStore{tx: tx}, &stubParcels{}, gw, &recordingPublisher{}, &countingCounter{})

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Zero(t, res.MatchedParcels)
}

func TestConfirm_EmptySessionID(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubStore{tx: &stubTx{}}, &stubParcels{}, &stubGateway{}, &recordingPublisher{}, &countingCounter{})

	_, err := svc.Confirm(context.Background(), "   ")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestConfirm_PublisherFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		getFn: func(_ context.Context, _ string) (*checkout.Session, error) {
			return paidSession(), nil
		},
	}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestService(&stubStore{tx: &stubTx{}}, &stubParcels{}, gw, pub, &countingCounter{})

	res, err := svc.Confirm(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestListByEmail(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		tx: &stubTx{},
		listFn: func(_ context.Context, email string) ([]domain.Payment, error) {
			require.Equal(t, "dana@example.com", email)
			return []domain.Payment{{ID: 1}}, nil
		},
	}
	svc := newTestService(store, &stubParcels{}, &stubGateway{}, &recordingPublisher{}, &countingCounter{})

	got, err := svc.ListByEmail(context.Background(), " Dana@Example.com ")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListByEmail(context.Background(), "")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
