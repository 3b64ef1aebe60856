package handlers

import "github.com/zapshift/parcel-service/internal/domain"

func toParcelDTO(p domain.Parcel) parcelDTO {
	return parcelDTO{
		ID:             p.ID,
		ParcelName:     p.Name,
		SenderEmail:    p.SenderEmail,
		CostCents:      p.CostCents,
		PaymentStatus:  string(p.PaymentStatus),
		DeliveryStatus: string(p.DeliveryStatus),
		TrackingID:     p.TrackingID,
		CreatedAt:      p.CreatedAt,
	}
}

func toParcelDTOs(ps []domain.Parcel) []parcelDTO {
	out := make([]parcelDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toParcelDTO(p))
	}
	return out
}

func toPaymentDTO(p domain.Payment) paymentDTO {
	return paymentDTO{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		ParcelID:      p.ParcelID,
		ParcelName:    p.ParcelName,
		PayerEmail:    p.PayerEmail,
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		Status:        p.Status,
		TrackingID:    p.TrackingID,
		PaidAt:        p.PaidAt,
	}
}

func toPaymentDTOs(ps []domain.Payment) []paymentDTO {
	out := make([]paymentDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPaymentDTO(p))
	}
	return out
}

func toAccountDTO(a domain.Account) accountDTO {
	return accountDTO{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func toAccountDTOs(as []domain.Account) []accountDTO {
	out := make([]accountDTO, 0, len(as))
	for _, a := range as {
		out = append(out, toAccountDTO(a))
	}
	return out
}

func toRiderDTO(a domain.RiderApplication) riderDTO {
	return riderDTO{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Region:     a.Region,
		District:   a.District,
		Status:     string(a.Status),
		WorkStatus: string(a.WorkStatus),
		CreatedAt:  a.CreatedAt,
	}
}

func toRiderDTOs(as []domain.RiderApplication) []riderDTO {
	out := make([]riderDTO, 0, len(as))
	for _, a := range as {
		out = append(out, toRiderDTO(a))
	}
	return out
}
