package request

import (
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/domain/money"
	"poolops/internal/usecase"
)

// LineItemRequest is one priced row of an estimate payload. Negative
// quantities and rates are rejected here, before the calculator ever sees
// them.
type LineItemRequest struct {
	ProductService string     `json:"product_service"`
	Description    string     `json:"description" binding:"required"`
	SKU            string     `json:"sku"`
	Quantity       float64    `json:"quantity" binding:"required,gt=0"`
	Rate           float64    `json:"rate" binding:"gte=0"`
	Taxable        bool       `json:"taxable"`
	ServiceDate    *time.Time `json:"service_date"`
}

type AttachmentRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
	Size int64  `json:"size"`
}

// EstimateCreateRequest is the payload for creating an estimate draft.
type EstimateCreateRequest struct {
	PropertyID    string `json:"property_id" binding:"required"`
	PropertyName  string `json:"property_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Address       string `json:"address"`

	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Items       []LineItemRequest `json:"items" binding:"required,min=1,dive"`

	DiscountType  string  `json:"discount_type" binding:"omitempty,oneof=percent fixed"`
	DiscountValue float64 `json:"discount_value" binding:"gte=0"`
	SalesTaxRate  float64 `json:"sales_tax_rate" binding:"gte=0"`
	DepositType   string  `json:"deposit_type" binding:"omitempty,oneof=percent fixed"`
	DepositValue  float64 `json:"deposit_value" binding:"gte=0"`

	WorkType          string              `json:"work_type"`
	TechNotes         string              `json:"tech_notes"`
	SourceType        string              `json:"source_type"`
	SourceRepairJobID string              `json:"source_repair_job_id"`
	SourceEmergencyID string              `json:"source_emergency_id"`
	ReportedDate      *time.Time          `json:"reported_date"`
	Photos            []string            `json:"photos"`
	Attachments       []AttachmentRequest `json:"attachments"`

	Actor ActorRequest `json:"actor"`
}

// EstimateUpdateRequest edits a draft. ExpectedVersion guards against
// concurrent edits; zero skips the check.
type EstimateUpdateRequest struct {
	EstimateCreateRequest
	ExpectedVersion int64 `json:"expected_version"`
}

// StatusUpdateRequest is the generic guarded transition payload.
type StatusUpdateRequest struct {
	Status                string     `json:"status" binding:"required"`
	ApprovedByManagerID   string     `json:"approved_by_manager_id"`
	ApprovedByManagerName string     `json:"approved_by_manager_name"`
	ManagerNotes          string     `json:"manager_notes"`
	RejectionReason       string     `json:"rejection_reason"`
	RepairTechID          string     `json:"repair_tech_id"`
	RepairTechName        string     `json:"repair_tech_name"`
	ScheduledDate         *time.Time `json:"scheduled_date"`
	InvoiceID             string     `json:"invoice_id"`

	Actor ActorRequest `json:"actor"`
}

// ReasonRequest carries the mandatory reason for archive and soft delete.
type ReasonRequest struct {
	Reason string       `json:"reason" binding:"required,min=5"`
	Actor  ActorRequest `json:"actor"`
}

func (r EstimateCreateRequest) ToDraft() usecase.EstimateDraft {
	items := make([]entities.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = entities.LineItem{
			ProductService: it.ProductService,
			Description:    it.Description,
			SKU:            it.SKU,
			Quantity:       it.Quantity,
			Rate:           it.Rate,
			Taxable:        it.Taxable,
			ServiceDate:    it.ServiceDate,
		}
	}
	attachments := make([]entities.Attachment, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = entities.Attachment{Name: a.Name, URL: a.URL, Size: a.Size}
	}
	return usecase.EstimateDraft{
		PropertyID:    r.PropertyID,
		PropertyName:  r.PropertyName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Address:       r.Address,
		Title:         r.Title,
		Description:   r.Description,
		Items:         items,
		DiscountType:  money.AdjustmentType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		SalesTaxRate:  r.SalesTaxRate,
		DepositType:   money.AdjustmentType(r.DepositType),
		DepositValue:  r.DepositValue,
		WorkType:      r.WorkType,
		TechNotes:     r.TechNotes,
		SourceType:    entities.SourceType(r.SourceType),
		SourceRepair:  r.SourceRepairJobID,
		SourceEmerg:   r.SourceEmergencyID,
		ReportedDate:  r.ReportedDate,
		Photos:        r.Photos,
		Attachments:   attachments,
	}
}

func (r StatusUpdateRequest) ToExtras() usecase.StatusExtras {
	return usecase.StatusExtras{
		ApprovedByManagerID:   r.ApprovedByManagerID,
		ApprovedByManagerName: r.ApprovedByManagerName,
		ManagerNotes:          r.ManagerNotes,
		RejectionReason:       r.RejectionReason,
		RepairTechID:          r.RepairTechID,
		RepairTechName:        r.RepairTechName,
		ScheduledDate:         r.ScheduledDate,
		InvoiceID:             r.InvoiceID,
	}
}
