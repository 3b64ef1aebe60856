package domain

import "time"

// Payment represents a completed transaction, one per successful checkout.
// TransactionID is the provider transaction reference and acts as the
// idempotency key: at most one record per transaction id.
type Payment struct {
	ID            int64
	TransactionID string
	ParcelID      int64
	ParcelName    string
	PayerEmail    string
	AmountCents   int64
	Currency      string
	Status        string
	TrackingID    string
	PaidAt        time.Time
}
