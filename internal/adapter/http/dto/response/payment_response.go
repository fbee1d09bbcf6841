package response

import (
	"time"

	"poolops/internal/domain/entities"
)

type PaymentResponse struct {
	PaymentID  string    `json:"payment_id"`
	ID         string    `json:"id"`
	EstimateID string    `json:"estimate_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromPayment(p entities.EstimatePayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:          p.ID,
		ID:                 p.ID,
		EstimateID:         p.EstimateID,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

func FromPayments(list []entities.EstimatePayment) []PaymentResponse {
	out := make([]PaymentResponse, len(list))
	for i, p := range list {
		out[i] = FromPayment(p)
	}
	return out
}
