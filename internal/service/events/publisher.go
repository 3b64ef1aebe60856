// Package events defines the parcel event stream ports.
package events

import (
	"context"

	"github.com/zapshift/parcel-service/internal/domain"
)

// Publisher pushes parcel status events to the event stream.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ParcelEvent) error
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, domain.ParcelEvent) error { return nil }

var _ Publisher = NopPublisher{}
