package response

import "poolops/internal/usecase"

// TokenViewResponse is the public approval page view for a token.
type TokenViewResponse struct {
	Estimate         EstimateResponse `json:"estimate"`
	AlreadyProcessed bool             `json:"already_processed"`
	Action           string           `json:"action,omitempty"`
}

func FromTokenView(v usecase.TokenView) TokenViewResponse {
	return TokenViewResponse{
		Estimate:         FromEstimate(v.Estimate),
		AlreadyProcessed: v.AlreadyProcessed,
		Action:           v.Action,
	}
}
