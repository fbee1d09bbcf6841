package response

import (
	"time"

	"poolops/internal/domain/entities"
)

type HistoryLogResponse struct {
	ID                string     `json:"id"`
	EstimateID        string     `json:"estimate_id"`
	EstimateNumber    string     `json:"estimate_number,omitempty"`
	PropertyID        string     `json:"property_id,omitempty"`
	PropertyName      string     `json:"property_name,omitempty"`
	CustomerName      string     `json:"customer_name,omitempty"`
	EstimateValue     string     `json:"estimate_value,omitempty"`
	Action            string     `json:"action"`
	Description       string     `json:"description"`
	PerformedByUserID string     `json:"performed_by_user_id,omitempty"`
	PerformedByName   string     `json:"performed_by_user_name,omitempty"`
	PerformedAt       time.Time  `json:"performed_at"`
	PreviousStatus    string     `json:"previous_status,omitempty"`
	NewStatus         string     `json:"new_status,omitempty"`
	ApproverName      string     `json:"approver_name,omitempty"`
	ApproverTitle     string     `json:"approver_title,omitempty"`
	ApprovalMethod    string     `json:"approval_method,omitempty"`
	ApprovalDetails   string     `json:"approval_details,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	EmailSubject      string     `json:"email_subject,omitempty"`
	EmailRecipients   []string   `json:"email_recipients,omitempty"`
}

func FromHistoryLog(l entities.HistoryLog) HistoryLogResponse {
	return HistoryLogResponse{
		ID:                l.ID,
		EstimateID:        l.EstimateID,
		EstimateNumber:    l.EstimateNumber,
		PropertyID:        l.PropertyID,
		PropertyName:      l.PropertyName,
		CustomerName:      l.CustomerName,
		EstimateValue:     l.EstimateValue.String(),
		Action:            string(l.ActionType),
		Description:       l.ActionDescription,
		PerformedByUserID: l.PerformedByUserID,
		PerformedByName:   l.PerformedByName,
		PerformedAt:       l.PerformedAt,
		PreviousStatus:    string(l.PreviousStatus),
		NewStatus:         string(l.NewStatus),
		ApproverName:      l.ApproverName,
		ApproverTitle:     l.ApproverTitle,
		ApprovalMethod:    string(l.ApprovalMethod),
		ApprovalDetails:   l.ApprovalDetails,
		Reason:            l.Reason,
		EmailSubject:      l.EmailSubject,
		EmailRecipients:   l.EmailRecipients,
	}
}

func FromHistoryLogs(list []entities.HistoryLog) []HistoryLogResponse {
	out := make([]HistoryLogResponse, len(list))
	for i, l := range list {
		out[i] = FromHistoryLog(l)
	}
	return out
}
