package kafka

import (
	"strings"
	"time"

	"github.com/zapshift/parcel-service/internal/domain"
)

// EventDTO is the wire form of a domain.ParcelEvent.
type EventDTO struct {
	ParcelID   int64     `json:"parcel_id"`
	TrackingID string    `json:"tracking_id,omitempty"`
	Kind       string    `json:"kind"`
	ActorEmail string    `json:"actor_email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to domain.ParcelEvent.
func ToDomain(dto EventDTO) domain.ParcelEvent {
	return domain.ParcelEvent{
		ParcelID:   dto.ParcelID,
		TrackingID: strings.TrimSpace(dto.TrackingID),
		Kind:       strings.TrimSpace(dto.Kind),
		ActorEmail: strings.TrimSpace(dto.ActorEmail),
		OccurredAt: dto.OccurredAt,
	}
}

// FromDomain converts domain.ParcelEvent to EventDTO.
func FromDomain(ev domain.ParcelEvent) EventDTO {
	return EventDTO{
		ParcelID:   ev.ParcelID,
		TrackingID: ev.TrackingID,
		Kind:       ev.Kind,
		ActorEmail: ev.ActorEmail,
		OccurredAt: ev.OccurredAt,
	}
}
