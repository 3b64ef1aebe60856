package domain

import "time"

// EventPaymentConfirmed marks the unpaid to paid transition in the audit trail.
const EventPaymentConfirmed = "payment-confirmed"

// ParcelEvent is a status-change event published to the event stream and
// persisted by the worker as the parcel audit trail.
type ParcelEvent struct {
	ParcelID   int64
	TrackingID string
	Kind       string
	ActorEmail string
	OccurredAt time.Time
}
