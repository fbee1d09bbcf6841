package entities

import (
	"time"

	"poolops/internal/domain/money"
)

// HistoryAction classifies an estimate history record.
type HistoryAction string

const (
	ActionCreated         HistoryAction = "created"
	ActionUpdated         HistoryAction = "updated"
	ActionSentForApproval HistoryAction = "sent_for_approval"
	ActionApproved        HistoryAction = "approved"
	ActionVerbalApproval  HistoryAction = "verbal_approval"
	ActionRejected        HistoryAction = "rejected"
	ActionNeedsScheduling HistoryAction = "needs_scheduling"
	ActionScheduled       HistoryAction = "scheduled"
	ActionReturnedToQueue HistoryAction = "returned_to_queue"
	ActionCompleted       HistoryAction = "completed"
	ActionReadyToInvoice  HistoryAction = "ready_to_invoice"
	ActionInvoiced        HistoryAction = "invoiced"
	ActionPaid            HistoryAction = "paid"
	ActionArchived        HistoryAction = "archived"
	ActionDeleted         HistoryAction = "deleted"
	ActionRestored        HistoryAction = "restored"
)

// ApprovalMethod records how a customer decision was communicated.
type ApprovalMethod string

const (
	ApprovalMethodEmail ApprovalMethod = "email"
	ApprovalMethodPhone ApprovalMethod = "phone"
	ApprovalMethodOther ApprovalMethod = "other"
)

// HistoryLog is one append-only audit record of an estimate action.
//
// Storage model (DynamoDB):
//   - PK: id
type HistoryLog struct {
	ID                string         `json:"id"`
	EstimateID        string         `json:"estimate_id"`
	EstimateNumber    string         `json:"estimate_number,omitempty"`
	PropertyID        string         `json:"property_id,omitempty"`
	PropertyName      string         `json:"property_name,omitempty"`
	CustomerName      string         `json:"customer_name,omitempty"`
	EstimateValue     money.Cents    `json:"estimate_value,omitempty"`
	ActionType        HistoryAction  `json:"action_type"`
	ActionDescription string         `json:"action_description"`
	PerformedByUserID string         `json:"performed_by_user_id,omitempty"`
	PerformedByName   string         `json:"performed_by_user_name,omitempty"`
	PerformedAt       time.Time      `json:"performed_at"`
	PreviousStatus    EstimateStatus `json:"previous_status,omitempty"`
	NewStatus         EstimateStatus `json:"new_status,omitempty"`
	ApproverName      string         `json:"approver_name,omitempty"`
	ApproverTitle     string         `json:"approver_title,omitempty"`
	ApprovalMethod    ApprovalMethod `json:"approval_method,omitempty"`
	ApprovalDetails   string         `json:"approval_details,omitempty"`
	Reason            string         `json:"reason,omitempty"`
	EmailSubject      string         `json:"email_subject,omitempty"`
	EmailRecipients   []string       `json:"email_recipients,omitempty"`
}

// HistoryFilter narrows a history query. Zero values mean "no constraint".
type HistoryFilter struct {
	EstimateID      string
	ActionType      HistoryAction
	PropertyID      string
	PerformedByName string
	ApprovalMethod  ApprovalMethod
	StartDate       *time.Time
	EndDate         *time.Time
}

// HistoryMetrics is the rollup shown on the history page.
type HistoryMetrics struct {
	Total           int `json:"total"`
	EmailApprovals  int `json:"emailApprovals"`
	VerbalApprovals int `json:"verbalApprovals"`
	Archived        int `json:"archived"`
	Deleted         int `json:"deleted"`
}
