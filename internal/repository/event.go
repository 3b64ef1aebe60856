package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapshift/parcel-service/internal/domain"
)

// EventRepo persists the parcel audit trail written by the event worker.
type EventRepo struct{ db *pgxpool.Pool }

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *pgxpool.Pool) *EventRepo { return &EventRepo{db: db} }

// Insert appends an event to the audit trail.
func (r *EventRepo) Insert(ctx context.Context, ev domain.ParcelEvent) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO parcel_events(parcel_id, tracking_id, kind, actor_email, occurred_at, recorded_at)
        VALUES($1,$2,$3,$4,$5,$6)
    `, ev.ParcelID, ev.TrackingID, ev.Kind, ev.ActorEmail, ev.OccurredAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert parcel event: %w", err)
	}
	return nil
}

// ListByParcel returns the audit trail for a parcel, oldest first.
func (r *EventRepo) ListByParcel(ctx context.Context, parcelID int64) ([]domain.ParcelEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT parcel_id, COALESCE(tracking_id, ''), kind, COALESCE(actor_email, ''), occurred_at
        FROM parcel_events
        WHERE parcel_id = $1
        ORDER BY occurred_at
    `, parcelID)
	if err != nil {
		return nil, fmt.Errorf("list parcel events %d: %w", parcelID, err)
	}
	defer rows.Close()

	var out []domain.ParcelEvent
	for rows.Next() {
		var ev domain.ParcelEvent
		if err := rows.Scan(&ev.ParcelID, &ev.TrackingID, &ev.Kind, &ev.ActorEmail, &ev.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
