package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zapshift/parcel-service/internal/apperr"
	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/service/events"
	"github.com/zapshift/parcel-service/internal/testutil/testlog"
)

type stubStore struct {
	insertFn func(context.Context, domain.ParcelEvent) error
}

func (s *stubStore) Insert(ctx context.Context, ev domain.ParcelEvent) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, ev)
}

func validEvent() domain.ParcelEvent {
	return domain.ParcelEvent{
		ParcelID:   8,
		TrackingID: "ZSP-20250101-AABBCCDDEEFF",
		Kind:       domain.EventPaymentConfirmed,
		ActorEmail: "dana@example.com",
		OccurredAt: time.Now().UTC(),
	}
}

func TestHandle_StoresEvent(t *testing.T) {
	t.Parallel()

	var stored domain.ParcelEvent
	store := &stubStore{
		insertFn: func(_ context.Context, ev domain.ParcelEvent) error {
			stored = ev
			return nil
		},
	}
	rec := testlog.New()
	r := events.NewRecorder(store, rec.Logger())

	require.NoError(t, r.Handle(context.Background(), validEvent()))
	require.Equal(t, int64(8), stored.ParcelID)

	entries := rec.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "parcel event recorded", entries[0].Msg)
}

func TestHandle_RejectsInvalid(t *testing.T) {
	t.Parallel()

	r := events.NewRecorder(&stubStore{}, testlog.New().Logger())

	ev := validEvent()
	ev.ParcelID = 0
	require.ErrorIs(t, r.Handle(context.Background(), ev), apperr.ErrInvalid)

	ev = validEvent()
	ev.Kind = "  "
	require.ErrorIs(t, r.Handle(context.Background(), ev), apperr.ErrInvalid)
}

func TestHandle_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("insert failed")
	store := &stubStore{
		insertFn: func(context.Context, domain.ParcelEvent) error { return boom },
	}
	r := events.NewRecorder(store, testlog.New().Logger())

	require.ErrorIs(t, r.Handle(context.Background(), validEvent()), boom)
}
