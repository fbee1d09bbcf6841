package entities

import (
	"time"

	"poolops/internal/domain/money"
)

// LineItem is one priced row within an estimate. Line items are owned
// exclusively by their estimate: LineNumber is 1-based and contiguous, and is
// renumbered whenever the item set changes.
type LineItem struct {
	LineNumber     int         `json:"line_number"`
	ProductService string      `json:"product_service"`
	Description    string      `json:"description"`
	SKU            string      `json:"sku,omitempty"`
	Quantity       float64     `json:"quantity"`
	Rate           float64     `json:"rate"` // major units (dollars)
	Amount         money.Cents `json:"amount"`
	Taxable        bool        `json:"taxable"`
	ServiceDate    *time.Time  `json:"service_date,omitempty"`
}

// PersonRef is a nullable id+name pair for the people/roles attached to an
// estimate. These are snapshots, not enforced foreign keys.
type PersonRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (p PersonRef) IsZero() bool { return p.ID == "" && p.Name == "" }

// DeadlineUnit is the unit of the scheduling deadline timer.
type DeadlineUnit string

const (
	DeadlineUnitHours DeadlineUnit = "hours"
	DeadlineUnitDays  DeadlineUnit = "days"
)

// Attachment is a non-photo file attached to an estimate.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Estimate is the central entity of the revenue workflow.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation: all stored amounts are integer minor units
// (money.Cents); line-item Rate and discount/deposit Value inputs stay in
// major units and are converted exactly once by the calculator.
type Estimate struct {
	ID             string `json:"id"`
	EstimateNumber string `json:"estimate_number"` // EST-YYRRRR, human-facing, not unique
	Version        int64  `json:"version"`

	// Ownership snapshot, captured at create/edit time.
	PropertyID    string `json:"property_id"`
	PropertyName  string `json:"property_name"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Address       string `json:"address,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Items           []LineItem           `json:"items"`
	Subtotal        money.Cents          `json:"subtotal"`
	DiscountType    money.AdjustmentType `json:"discount_type"`
	DiscountValue   float64              `json:"discount_value"`
	DiscountAmount  money.Cents          `json:"discount_amount"`
	TaxableSubtotal money.Cents          `json:"taxable_subtotal"`
	SalesTaxRate    float64              `json:"sales_tax_rate"`
	SalesTaxAmount  money.Cents          `json:"sales_tax_amount"`
	DepositType     money.AdjustmentType `json:"deposit_type"`
	DepositValue    float64              `json:"deposit_value"`
	DepositAmount   money.Cents          `json:"deposit_amount"`
	TotalAmount     money.Cents          `json:"total_amount"`

	Status EstimateStatus `json:"status"`

	CreatedByTech   PersonRef `json:"created_by_tech"`
	RepairTech      PersonRef `json:"repair_tech"`
	ServiceTech     PersonRef `json:"service_tech"`
	FieldSupervisor PersonRef `json:"field_supervisor"`
	OfficeMember    PersonRef `json:"office_member"`
	RepairForeman   PersonRef `json:"repair_foreman"`
	ApprovedBy      PersonRef `json:"approved_by_manager"`

	// Email approval tracking. A resend replaces the token wholesale so at
	// most one token is ever valid.
	ApprovalToken          string     `json:"approval_token,omitempty"`
	ApprovalTokenExpiresAt *time.Time `json:"approval_token_expires_at,omitempty"`
	ApprovalSentTo         string     `json:"approval_sent_to,omitempty"`
	ApprovalSentAt         *time.Time `json:"approval_sent_at,omitempty"`
	CustomerApproverName   string     `json:"customer_approver_name,omitempty"`
	CustomerApproverTitle  string     `json:"customer_approver_title,omitempty"`
	ApprovedAt             *time.Time `json:"approved_at,omitempty"`
	RejectedAt             *time.Time `json:"rejected_at,omitempty"`
	RejectionReason        string     `json:"rejection_reason,omitempty"`

	// Scheduling.
	ScheduledDate      *time.Time   `json:"scheduled_date,omitempty"`
	DeadlineValue      int          `json:"deadline_value,omitempty"`
	DeadlineUnit       DeadlineUnit `json:"deadline_unit,omitempty"`
	DeadlineAt         *time.Time   `json:"deadline_at,omitempty"`
	AutoReturnedAt     *time.Time   `json:"auto_returned_at,omitempty"`
	AutoReturnedReason string       `json:"auto_returned_reason,omitempty"`

	// Invoicing.
	InvoiceID             string `json:"invoice_id,omitempty"`
	ExternalInvoiceID     string `json:"external_invoice_id,omitempty"`
	ExternalInvoiceNumber string `json:"external_invoice_number,omitempty"`
	InvoiceError          string `json:"invoice_error,omitempty"`

	// Lifecycle timestamps.
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ReportedDate      *time.Time `json:"reported_date,omitempty"`
	SentForApprovalAt *time.Time `json:"sent_for_approval_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	InvoicedAt        *time.Time `json:"invoiced_at,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`

	// Provenance.
	SourceType         SourceType `json:"source_type,omitempty"`
	SourceRepairJobID  string     `json:"source_repair_job_id,omitempty"`
	SourceEmergencyID  string     `json:"source_emergency_id,omitempty"`
	ServiceRepairCount int        `json:"service_repair_count,omitempty"`
	ConvertedBy        PersonRef  `json:"converted_by,omitempty"`
	ConvertedAt        *time.Time `json:"converted_at,omitempty"`

	// Work-order tracking.
	WorkType   string `json:"work_type,omitempty"`
	WOReceived bool   `json:"wo_received,omitempty"`
	WONumber   string `json:"wo_number,omitempty"`

	// Archive / soft delete.
	ArchiveReason string     `json:"archive_reason,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	DeleteReason  string     `json:"delete_reason,omitempty"`

	Photos      []string     `json:"photos,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	TechNotes    string `json:"tech_notes,omitempty"`
	ManagerNotes string `json:"manager_notes,omitempty"`
}

// NormalizeItems renumbers line items 1-based contiguous and recomputes each
// amount from quantity × rate.
func NormalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		it.LineNumber = i + 1
		it.Amount = money.LineAmount(it.Quantity, it.Rate)
		out[i] = it
	}
	return out
}

// Recalculate applies the money calculator to the estimate's current items
// and rate inputs, keeping the total invariant in sync.
func (e *Estimate) Recalculate() {
	lines := make([]money.Line, len(e.Items))
	for i, it := range e.Items {
		lines[i] = money.Line{Amount: it.Amount, Taxable: it.Taxable}
	}
	t := money.ComputeTotals(lines, e.DiscountType, e.DiscountValue, e.SalesTaxRate, e.DepositType, e.DepositValue)
	e.Subtotal = t.Subtotal
	e.DiscountAmount = t.DiscountAmount
	e.TaxableSubtotal = t.TaxableSubtotal
	e.SalesTaxAmount = t.SalesTaxAmount
	e.TotalAmount = t.TotalAmount
	e.DepositAmount = t.DepositAmount
}

// DeadlineAfter computes the deadline timestamp for a scheduling assignment.
func DeadlineAfter(now time.Time, value int, unit DeadlineUnit) time.Time {
	switch unit {
	case DeadlineUnitDays:
		return now.Add(time.Duration(value) * 24 * time.Hour)
	default:
		return now.Add(time.Duration(value) * time.Hour)
	}
}
