package events

import (
	"context"
	"strings"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
)

type eventStore interface {
	Insert(ctx context.Context, ev domain.ParcelEvent) error
}

// Recorder persists consumed parcel events as the audit trail.
type Recorder struct {
	store  eventStore
	logger logx.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(store eventStore, logger logx.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Handle validates and stores one event. Invalid events return ErrInvalid so
// the transport can drop them instead of retrying forever.
func (r *Recorder) Handle(ctx context.Context, ev domain.ParcelEvent) error {
	if ev.ParcelID <= 0 || strings.TrimSpace(ev.Kind) == "" {
		return apperr.ErrInvalid
	}
	if err := r.store.Insert(ctx, ev); err != nil {
		return err
	}
	r.logger.Info("parcel event recorded",
		logx.Int64("parcel_id", ev.ParcelID),
		logx.String("kind", ev.Kind),
		logx.String("tracking_id", ev.TrackingID),
	)
	return nil
}
