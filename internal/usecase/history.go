package usecase

import (
	"context"
	"log"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// historyEntry captures the per-action fields a workflow step wants recorded
// on top of the estimate snapshot.
type historyEntry struct {
	Action          entities.HistoryAction
	Description     string
	PreviousStatus  entities.EstimateStatus
	NewStatus       entities.EstimateStatus
	ApproverName    string
	ApproverTitle   string
	ApprovalMethod  entities.ApprovalMethod
	ApprovalDetails string
	Reason          string
	EmailSubject    string
	EmailRecipients []string
}

// logHistory appends an audit record for an estimate action. Logging must
// never fail the action itself; a write error is logged and swallowed.
func logHistory(ctx context.Context, repo interfaces.IHistoryRepository, e entities.Estimate, actor Actor, entry historyEntry) {
	if repo == nil {
		return
	}
	actor = actor.orSystem()
	l := entities.HistoryLog{
		ID:                uuid.NewString(),
		EstimateID:        e.ID,
		EstimateNumber:    e.EstimateNumber,
		PropertyID:        e.PropertyID,
		PropertyName:      e.PropertyName,
		CustomerName:      e.CustomerName,
		EstimateValue:     e.TotalAmount,
		ActionType:        entry.Action,
		ActionDescription: entry.Description,
		PerformedByUserID: actor.UserID,
		PerformedByName:   actor.UserName,
		PerformedAt:       time.Now().UTC(),
		PreviousStatus:    entry.PreviousStatus,
		NewStatus:         entry.NewStatus,
		ApproverName:      entry.ApproverName,
		ApproverTitle:     entry.ApproverTitle,
		ApprovalMethod:    entry.ApprovalMethod,
		ApprovalDetails:   entry.ApprovalDetails,
		Reason:            entry.Reason,
		EmailSubject:      entry.EmailSubject,
		EmailRecipients:   entry.EmailRecipients,
	}
	if _, err := repo.Create(ctx, l); err != nil {
		log.Printf("[history][usecase] log write failed estimate_id=%s action=%s err=%v", e.ID, entry.Action, err)
	}
}
