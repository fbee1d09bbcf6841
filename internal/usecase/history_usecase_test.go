package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"poolops/internal/domain/entities"
	mock_interfaces "poolops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestHistoryUseCase_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIHistoryRepository(ctrl)
	uc := NewHistoryUseCase(repo)

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]entities.HistoryLog{
		{ActionType: entities.ActionApproved, ApprovalMethod: entities.ApprovalMethodEmail},
		{ActionType: entities.ActionApproved, ApprovalMethod: entities.ApprovalMethodPhone},
		{ActionType: entities.ActionVerbalApproval, ApprovalMethod: entities.ApprovalMethodPhone},
		{ActionType: entities.ActionArchived},
		{ActionType: entities.ActionDeleted},
		{ActionType: entities.ActionCreated},
	}, nil)

	m, err := uc.Metrics(context.Background(), entities.HistoryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Total != 6 {
		t.Fatalf("total: expected 6, got %d", m.Total)
	}
	if m.EmailApprovals != 1 || m.VerbalApprovals != 1 {
		t.Fatalf("approvals: expected 1/1, got %d/%d", m.EmailApprovals, m.VerbalApprovals)
	}
	if m.Archived != 1 || m.Deleted != 1 {
		t.Fatalf("archived/deleted: expected 1/1, got %d/%d", m.Archived, m.Deleted)
	}
}

func TestHistoryUseCase_ExportCSV(t *testing.T) {
	t.Run("renders header and rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIHistoryRepository(ctrl)
		uc := NewHistoryUseCase(repo)

		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]entities.HistoryLog{
			{
				EstimateNumber:    "EST-260042",
				PropertyName:      "Lakeside HOA",
				ActionType:        entities.ActionApproved,
				ActionDescription: "Approved online by Pat",
				NewStatus:         entities.StatusApproved,
				ApproverName:      "Pat",
				ApprovalMethod:    entities.ApprovalMethodEmail,
				EstimateValue:     9720,
			},
		}, nil)

		out, err := uc.ExportCSV(context.Background(), entities.HistoryFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected header plus one row, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[0], "performed_at,estimate_number") {
			t.Fatalf("unexpected header %q", lines[0])
		}
		if !strings.Contains(lines[1], "EST-260042") || !strings.Contains(lines[1], "97.20") {
			t.Fatalf("unexpected row %q", lines[1])
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIHistoryRepository(ctrl)
		uc := NewHistoryUseCase(repo)

		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.ExportCSV(context.Background(), entities.HistoryFilter{})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
