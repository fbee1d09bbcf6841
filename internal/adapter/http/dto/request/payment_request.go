package request

import "encoding/json"

// PaymentCreateRequest is the payload for processing a payment against an
// invoiced estimate.
//
// `provider_payload` is stored as-is (raw JSON) to support varying provider
// schemas.
type PaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
	Actor           ActorRequest    `json:"actor"`
}
