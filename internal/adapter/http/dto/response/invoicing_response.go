package response

import "poolops/internal/usecase"

// BatchInvoiceResponse reports the per-item outcomes of a batch invoicing
// call.
type BatchInvoiceResponse struct {
	Results  []usecase.BatchItemResult `json:"results"`
	Invoiced int                       `json:"invoiced"`
	Failed   int                       `json:"failed"`
}

func FromBatchResults(results []usecase.BatchItemResult) BatchInvoiceResponse {
	resp := BatchInvoiceResponse{Results: results}
	for _, r := range results {
		if r.Invoiced {
			resp.Invoiced++
		} else {
			resp.Failed++
		}
	}
	return resp
}
