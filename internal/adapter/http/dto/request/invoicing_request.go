package request

import "poolops/internal/usecase"

// ReadyToInvoiceRequest moves a completed estimate into the invoicing queue.
type ReadyToInvoiceRequest struct {
	WONumber string       `json:"wo_number"`
	Actor    ActorRequest `json:"actor"`
}

// InvoiceRequest creates the external invoice for a single estimate.
type InvoiceRequest struct {
	SendEmail bool         `json:"send_email"`
	CCEmails  []string     `json:"cc_emails" binding:"omitempty,dive,email"`
	BCCEmails []string     `json:"bcc_emails" binding:"omitempty,dive,email"`
	Memo      string       `json:"memo"`
	Terms     string       `json:"terms"`
	Actor     ActorRequest `json:"actor"`
}

func (r InvoiceRequest) ToOptions() usecase.InvoiceOptions {
	return usecase.InvoiceOptions{
		SendEmail: r.SendEmail,
		CCEmails:  r.CCEmails,
		BCCEmails: r.BCCEmails,
		Memo:      r.Memo,
		Terms:     r.Terms,
	}
}

// BatchInvoiceRequest invoices several estimates in one call.
type BatchInvoiceRequest struct {
	EstimateIDs []string `json:"estimate_ids" binding:"required,min=1"`
	Mode        string   `json:"mode" binding:"required,oneof=combined separate"`
	InvoiceRequest
}
