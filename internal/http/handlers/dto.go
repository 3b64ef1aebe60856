package handlers

import "time"

type createParcelRequest struct {
	ParcelName  string `json:"parcelName"`
	SenderEmail string `json:"senderEmail"`
	CostCents   int64  `json:"costCents"`
}

type parcelDTO struct {
	ID             int64     `json:"id"`
	ParcelName     string    `json:"parcelName"`
	SenderEmail    string    `json:"senderEmail"`
	CostCents      int64     `json:"costCents"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus,omitempty"`
	TrackingID     string    `json:"trackingId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type createCheckoutRequest struct {
	ParcelID int64 `json:"parcelId"`
}

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

type confirmPaymentResponse struct {
	Success          bool   `json:"success"`
	AlreadyProcessed bool   `json:"alreadyProcessed,omitempty"`
	TransactionID    string `json:"transactionId,omitempty"`
	TrackingID       string `json:"trackingId,omitempty"`
	ModifiedCount    int64  `json:"modifiedCount"`
	Message          string `json:"message,omitempty"`
}

type paymentDTO struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transactionId"`
	ParcelID      int64     `json:"parcelId"`
	ParcelName    string    `json:"parcelName"`
	PayerEmail    string    `json:"payerEmail"`
	AmountCents   int64     `json:"amountCents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	TrackingID    string    `json:"trackingId,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type registerUserResponse struct {
	ID       int64  `json:"id,omitempty"`
	Inserted bool   `json:"inserted"`
	Message  string `json:"message,omitempty"`
}

type accountDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type applyRiderRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Region   string `json:"region"`
	District string `json:"district"`
}

type riderDTO struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Region     string    `json:"region"`
	District   string    `json:"district"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type decideRiderRequest struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type decideRiderResponse struct {
	Status   string `json:"status"`
	Promoted bool   `json:"promoted"`
}
