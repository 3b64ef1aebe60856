package domain

import "time"

// Parcel represents a shipment request.
// TrackingID stays empty until the payment is confirmed.
type Parcel struct {
	ID             int64
	SenderEmail    string
	Name           string
	CostCents      int64
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
	TrackingID     string
	CreatedAt      time.Time
}

// ParcelFilter carries optional listing filters. A nil field means "no filter".
type ParcelFilter struct {
	SenderEmail    *string
	DeliveryStatus *DeliveryStatus
}
