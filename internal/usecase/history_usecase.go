package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
)

// IHistoryUseCase reads the audit trail: filtered listing, the dashboard
// rollup, and a CSV export of the filtered rows.
type IHistoryUseCase interface {
	List(ctx context.Context, filter entities.HistoryFilter) ([]entities.HistoryLog, error)
	Metrics(ctx context.Context, filter entities.HistoryFilter) (entities.HistoryMetrics, error)
	ExportCSV(ctx context.Context, filter entities.HistoryFilter) ([]byte, error)
}

type HistoryUseCase struct {
	repo interfaces.IHistoryRepository
}

var _ IHistoryUseCase = (*HistoryUseCase)(nil)

func NewHistoryUseCase(repo interfaces.IHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

func (u *HistoryUseCase) List(ctx context.Context, filter entities.HistoryFilter) ([]entities.HistoryLog, error) {
	return u.repo.List(ctx, filter)
}

func (u *HistoryUseCase) Metrics(ctx context.Context, filter entities.HistoryFilter) (entities.HistoryMetrics, error) {
	logs, err := u.repo.List(ctx, filter)
	if err != nil {
		return entities.HistoryMetrics{}, err
	}

	m := entities.HistoryMetrics{Total: len(logs)}
	for _, l := range logs {
		switch l.ActionType {
		case entities.ActionApproved:
			if l.ApprovalMethod == entities.ApprovalMethodEmail {
				m.EmailApprovals++
			}
		case entities.ActionVerbalApproval:
			m.VerbalApprovals++
		case entities.ActionArchived:
			m.Archived++
		case entities.ActionDeleted:
			m.Deleted++
		}
	}
	return m, nil
}

var historyCSVHeader = []string{
	"performed_at", "estimate_number", "property_name", "customer_name",
	"action", "description", "previous_status", "new_status",
	"performed_by", "approver_name", "approval_method", "reason", "estimate_value",
}

// ExportCSV renders the filtered history rows as a CSV document, one row per
// log entry, in the column order of historyCSVHeader.
func (u *HistoryUseCase) ExportCSV(ctx context.Context, filter entities.HistoryFilter) ([]byte, error) {
	logs, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(historyCSVHeader); err != nil {
		return nil, err
	}
	for _, l := range logs {
		row := []string{
			l.PerformedAt.UTC().Format(time.RFC3339),
			l.EstimateNumber,
			l.PropertyName,
			l.CustomerName,
			string(l.ActionType),
			l.ActionDescription,
			string(l.PreviousStatus),
			string(l.NewStatus),
			l.PerformedByName,
			l.ApproverName,
			string(l.ApprovalMethod),
			l.Reason,
			l.EstimateValue.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
