package response

import (
	"time"

	"poolops/internal/domain/entities"
)

// LineItemResponse mirrors one estimate row. Amount is in cents;
// AmountDisplay is the formatted dollar string.
type LineItemResponse struct {
	LineNumber     int        `json:"line_number"`
	ProductService string     `json:"product_service,omitempty"`
	Description    string     `json:"description"`
	SKU            string     `json:"sku,omitempty"`
	Quantity       float64    `json:"quantity"`
	Rate           float64    `json:"rate"`
	Amount         int64      `json:"amount_cents"`
	AmountDisplay  string     `json:"amount"`
	Taxable        bool       `json:"taxable"`
	ServiceDate    *time.Time `json:"service_date,omitempty"`
}

type PersonResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type AttachmentResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// EstimateResponse is the full API view of an estimate. Monetary fields are
// exposed both as integer cents (authoritative) and formatted dollar strings.
type EstimateResponse struct {
	ID             string `json:"id"`
	EstimateNumber string `json:"estimate_number"`
	Version        int64  `json:"version"`

	PropertyID    string `json:"property_id"`
	PropertyName  string `json:"property_name,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Address       string `json:"address,omitempty"`

	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Items       []LineItemResponse `json:"items"`

	SubtotalCents        int64   `json:"subtotal_cents"`
	Subtotal             string  `json:"subtotal"`
	DiscountType         string  `json:"discount_type"`
	DiscountValue        float64 `json:"discount_value"`
	DiscountAmountCents  int64   `json:"discount_amount_cents"`
	DiscountAmount       string  `json:"discount_amount"`
	TaxableSubtotalCents int64   `json:"taxable_subtotal_cents"`
	SalesTaxRate         float64 `json:"sales_tax_rate"`
	SalesTaxAmountCents  int64   `json:"sales_tax_amount_cents"`
	SalesTaxAmount       string  `json:"sales_tax_amount"`
	DepositType          string  `json:"deposit_type"`
	DepositValue         float64 `json:"deposit_value"`
	DepositAmountCents   int64   `json:"deposit_amount_cents"`
	DepositAmount        string  `json:"deposit_amount"`
	TotalCents           int64   `json:"total_cents"`
	Total                string  `json:"total"`

	Status string `json:"status"`

	CreatedByTech   PersonResponse `json:"created_by_tech,omitempty"`
	RepairTech      PersonResponse `json:"repair_tech,omitempty"`
	ServiceTech     PersonResponse `json:"service_tech,omitempty"`
	FieldSupervisor PersonResponse `json:"field_supervisor,omitempty"`
	OfficeMember    PersonResponse `json:"office_member,omitempty"`
	RepairForeman   PersonResponse `json:"repair_foreman,omitempty"`
	ApprovedBy      PersonResponse `json:"approved_by_manager,omitempty"`

	ApprovalSentTo        string     `json:"approval_sent_to,omitempty"`
	ApprovalSentAt        *time.Time `json:"approval_sent_at,omitempty"`
	CustomerApproverName  string     `json:"customer_approver_name,omitempty"`
	CustomerApproverTitle string     `json:"customer_approver_title,omitempty"`
	ApprovedAt            *time.Time `json:"approved_at,omitempty"`
	RejectedAt            *time.Time `json:"rejected_at,omitempty"`
	RejectionReason       string     `json:"rejection_reason,omitempty"`

	ScheduledDate      *time.Time `json:"scheduled_date,omitempty"`
	DeadlineValue      int        `json:"deadline_value,omitempty"`
	DeadlineUnit       string     `json:"deadline_unit,omitempty"`
	DeadlineAt         *time.Time `json:"deadline_at,omitempty"`
	AutoReturnedAt     *time.Time `json:"auto_returned_at,omitempty"`
	AutoReturnedReason string     `json:"auto_returned_reason,omitempty"`

	InvoiceID             string `json:"invoice_id,omitempty"`
	ExternalInvoiceID     string `json:"external_invoice_id,omitempty"`
	ExternalInvoiceNumber string `json:"external_invoice_number,omitempty"`
	InvoiceError          string `json:"invoice_error,omitempty"`

	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ReportedDate      *time.Time `json:"reported_date,omitempty"`
	SentForApprovalAt *time.Time `json:"sent_for_approval_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	InvoicedAt        *time.Time `json:"invoiced_at,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`

	SourceType         string `json:"source_type,omitempty"`
	SourceRepairJobID  string `json:"source_repair_job_id,omitempty"`
	SourceEmergencyID  string `json:"source_emergency_id,omitempty"`
	ServiceRepairCount int    `json:"service_repair_count,omitempty"`

	WorkType   string `json:"work_type,omitempty"`
	WOReceived bool   `json:"wo_received,omitempty"`
	WONumber   string `json:"wo_number,omitempty"`

	ArchiveReason string     `json:"archive_reason,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	DeleteReason  string     `json:"delete_reason,omitempty"`

	Photos      []string             `json:"photos,omitempty"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`

	TechNotes    string `json:"tech_notes,omitempty"`
	ManagerNotes string `json:"manager_notes,omitempty"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	items := make([]LineItemResponse, len(e.Items))
	for i, it := range e.Items {
		items[i] = LineItemResponse{
			LineNumber:     it.LineNumber,
			ProductService: it.ProductService,
			Description:    it.Description,
			SKU:            it.SKU,
			Quantity:       it.Quantity,
			Rate:           it.Rate,
			Amount:         int64(it.Amount),
			AmountDisplay:  it.Amount.String(),
			Taxable:        it.Taxable,
			ServiceDate:    it.ServiceDate,
		}
	}
	attachments := make([]AttachmentResponse, len(e.Attachments))
	for i, a := range e.Attachments {
		attachments[i] = AttachmentResponse{Name: a.Name, URL: a.URL, Size: a.Size}
	}

	return EstimateResponse{
		ID:             e.ID,
		EstimateNumber: e.EstimateNumber,
		Version:        e.Version,

		PropertyID:    e.PropertyID,
		PropertyName:  e.PropertyName,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		Address:       e.Address,

		Title:       e.Title,
		Description: e.Description,
		Items:       items,

		SubtotalCents:        int64(e.Subtotal),
		Subtotal:             e.Subtotal.String(),
		DiscountType:         string(e.DiscountType),
		DiscountValue:        e.DiscountValue,
		DiscountAmountCents:  int64(e.DiscountAmount),
		DiscountAmount:       e.DiscountAmount.String(),
		TaxableSubtotalCents: int64(e.TaxableSubtotal),
		SalesTaxRate:         e.SalesTaxRate,
		SalesTaxAmountCents:  int64(e.SalesTaxAmount),
		SalesTaxAmount:       e.SalesTaxAmount.String(),
		DepositType:          string(e.DepositType),
		DepositValue:         e.DepositValue,
		DepositAmountCents:   int64(e.DepositAmount),
		DepositAmount:        e.DepositAmount.String(),
		TotalCents:           int64(e.TotalAmount),
		Total:                e.TotalAmount.String(),

		Status: string(e.Status),

		CreatedByTech:   PersonResponse(e.CreatedByTech),
		RepairTech:      PersonResponse(e.RepairTech),
		ServiceTech:     PersonResponse(e.ServiceTech),
		FieldSupervisor: PersonResponse(e.FieldSupervisor),
		OfficeMember:    PersonResponse(e.OfficeMember),
		RepairForeman:   PersonResponse(e.RepairForeman),
		ApprovedBy:      PersonResponse(e.ApprovedBy),

		ApprovalSentTo:        e.ApprovalSentTo,
		ApprovalSentAt:        e.ApprovalSentAt,
		CustomerApproverName:  e.CustomerApproverName,
		CustomerApproverTitle: e.CustomerApproverTitle,
		ApprovedAt:            e.ApprovedAt,
		RejectedAt:            e.RejectedAt,
		RejectionReason:       e.RejectionReason,

		ScheduledDate:      e.ScheduledDate,
		DeadlineValue:      e.DeadlineValue,
		DeadlineUnit:       string(e.DeadlineUnit),
		DeadlineAt:         e.DeadlineAt,
		AutoReturnedAt:     e.AutoReturnedAt,
		AutoReturnedReason: e.AutoReturnedReason,

		InvoiceID:             e.InvoiceID,
		ExternalInvoiceID:     e.ExternalInvoiceID,
		ExternalInvoiceNumber: e.ExternalInvoiceNumber,
		InvoiceError:          e.InvoiceError,

		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
		ReportedDate:      e.ReportedDate,
		SentForApprovalAt: e.SentForApprovalAt,
		CompletedAt:       e.CompletedAt,
		InvoicedAt:        e.InvoicedAt,
		PaidAt:            e.PaidAt,

		SourceType:         string(e.SourceType),
		SourceRepairJobID:  e.SourceRepairJobID,
		SourceEmergencyID:  e.SourceEmergencyID,
		ServiceRepairCount: e.ServiceRepairCount,

		WorkType:   e.WorkType,
		WOReceived: e.WOReceived,
		WONumber:   e.WONumber,

		ArchiveReason: e.ArchiveReason,
		DeletedAt:     e.DeletedAt,
		DeleteReason:  e.DeleteReason,

		Photos:      e.Photos,
		Attachments: attachments,

		TechNotes:    e.TechNotes,
		ManagerNotes: e.ManagerNotes,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, len(list))
	for i, e := range list {
		out[i] = FromEstimate(e)
	}
	return out
}
