// Package payment owns the parcel payment lifecycle: checkout session
// creation and the exactly-once confirmation of completed payments.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/gateway/checkout"
	"github.com/zapshift/parcel-service/internal/logx"
	"github.com/zapshift/parcel-service/internal/ports/paymenttx"
	"github.com/zapshift/parcel-service/internal/service/events"
	"github.com/zapshift/parcel-service/internal/tracking"
)

// Config carries the checkout-facing settings of the engine.
type Config struct {
	Currency   string
	SiteDomain string
}

// Service transitions parcels from unpaid to paid exactly once per real-world
// payment, consistently with the payment record ledger.
type Service struct {
	store            paymentStore
	parcels          parcelGetter
	gateway          checkoutGateway
	publisher        events.Publisher
	logger           logx.Logger
	confirmed        counter
	cfg              Config
	operationTimeout time.Duration
	now              func() time.Time
	newTrackingID    func(time.Time) string
}

// NewService creates and configures the payment Service.
func NewService(
	store paymentStore,
	parcels parcelGetter,
	gateway checkoutGateway,
	publisher events.Publisher,
	logger logx.Logger,
	confirmed counter,
	cfg Config,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		store:            store,
		parcels:          parcels,
		gateway:          gateway,
		publisher:        publisher,
		logger:           logger,
		confirmed:        confirmed,
		cfg:              cfg,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		newTrackingID:    tracking.New,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateCheckout creates a provider checkout session for an existing parcel
// and returns the redirect URL. The parcel id rides in session metadata so
// the confirmation step can find it again.
func (s *Service) CreateCheckout(ctx context.Context, parcelID int64) (string, error) {
	if parcelID <= 0 {
		return "", apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.parcels.Get(ctx, parcelID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", apperr.ErrNotFound
	}

	sess, err := s.gateway.CreateSession(ctx, checkout.CreateSessionParams{
		AmountCents:   p.CostCents,
		Currency:      s.cfg.Currency,
		ProductName:   p.Name,
		CustomerEmail: p.SenderEmail,
		ParcelID:      strconv.FormatInt(p.ID, 10),
		SuccessURL:    s.cfg.SiteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.SiteDomain + "/dashboard/payment-cancelled",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// ConfirmResult reports the outcome of a payment confirmation.
type ConfirmResult struct {
	Success          bool
	AlreadyProcessed bool
	TransactionID    string
	TrackingID       string
	// MatchedParcels is zero when the parcel referenced by the session no
	// longer exists; callers detect the no-op through the count.
	MatchedParcels int64
	Message        string
}

// Confirm retrieves the authoritative session state and applies the payment
// exactly once. Safe to invoke repeatedly for the same session: duplicates
// return the original outcome without creating new records.
func (s *Service) Confirm(ctx context.Context, sessionID string) (ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ConfirmResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sess, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("retrieve checkout session: %w", err)
	}

	txID := sess.PaymentIntent
	if txID != "" {
		existing, err := s.store.ByTransactionID(ctx, txID)
		if err != nil {
			return ConfirmResult{}, err
		}
		if existing != nil {
			return priorOutcome(existing), nil
		}
	}

	if sess.PaymentStatus != checkout.SessionPaid {
		return ConfirmResult{
			Success: true,
			Message: "payment not completed, nothing recorded",
		}, nil
	}

	// the transaction id is the idempotency key of the ledger; a paid session
	// without one must not be recorded
	if txID == "" {
		return ConfirmResult{}, fmt.Errorf("session %s carries no transaction id: %w", sessionID, apperr.ErrInvalid)
	}

	parcelID, err := strconv.ParseInt(sess.Metadata["parcelId"], 10, 64)
	if err != nil || parcelID <= 0 {
		return ConfirmResult{}, fmt.Errorf("session %s carries no parcel reference: %w", sessionID, apperr.ErrInvalid)
	}

	now := s.now()
	trackingID := s.newTrackingID(now)
	record := &domain.Payment{
		TransactionID: txID,
		ParcelID:      parcelID,
		ParcelName:    sess.Metadata["parcelName"],
		PayerEmail:    strings.ToLower(sess.CustomerEmail),
		AmountCents:   sess.AmountTotal,
		Currency:      sess.Currency,
		Status:        sess.PaymentStatus,
		TrackingID:    trackingID,
		PaidAt:        now,
	}

	var matched int64
	err = s.store.WithTx(ctx, func(tx paymenttx.Repository) error {
		matched, err = tx.MarkParcelPaid(ctx, parcelID, trackingID)
		if err != nil {
			return err
		}
		return tx.InsertPayment(ctx, record)
	})
	if errors.Is(err, apperr.ErrConflict) {
		// a concurrent confirmation for the same session won the insert;
		// the unique constraint makes this the idempotent-success path
		prior, readErr := s.store.ByTransactionID(ctx, txID)
		if readErr != nil {
			return ConfirmResult{}, readErr
		}
		if prior != nil {
			return priorOutcome(prior), nil
		}
		return ConfirmResult{}, err
	}
	if err != nil {
		return ConfirmResult{}, err
	}

	if s.confirmed != nil {
		s.confirmed.Inc()
	}
	s.logger.Info("payment confirmed",
		logx.String("event", "payment_confirmed"),
		logx.Int64("parcel_id", parcelID),
		logx.String("transaction_id", txID),
		logx.String("tracking_id", trackingID),
		logx.Int64("matched_parcels", matched),
	)
	s.publish(ctx, domain.ParcelEvent{
		ParcelID:   parcelID,
		TrackingID: trackingID,
		Kind:       domain.EventPaymentConfirmed,
		ActorEmail: record.PayerEmail,
		OccurredAt: now,
	})

	return ConfirmResult{
		Success:        true,
		TransactionID:  txID,
		TrackingID:     trackingID,
		MatchedParcels: matched,
		Message:        "payment recorded",
	}, nil
}

func priorOutcome(p *domain.Payment) ConfirmResult {
	return ConfirmResult{
		Success:          true,
		AlreadyProcessed: true,
		TransactionID:    p.TransactionID,
		TrackingID:       p.TrackingID,
		MatchedParcels:   1,
		Message:          "payment already recorded",
	}
}

// publish is best effort: the payment is committed, a broker outage only
// delays the audit trail.
func (s *Service) publish(ctx context.Context, ev domain.ParcelEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Error("publish parcel event failed",
			logx.Int64("parcel_id", ev.ParcelID),
			logx.String("kind", ev.Kind),
			logx.Err(err),
		)
	}
}

// ListByEmail returns payment records for a payer email, newest first.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListByEmail(ctx, email)
}
