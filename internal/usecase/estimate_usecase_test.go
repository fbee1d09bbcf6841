package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"poolops/internal/domain/entities"
	"poolops/internal/domain/money"
	mock_interfaces "poolops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func draftFixture() EstimateDraft {
	return EstimateDraft{
		PropertyID:   "prop-1",
		PropertyName: "Lakeside HOA",
		Title:        "Pump replacement",
		Items: entities.NormalizeItems([]entities.LineItem{
			{Description: "Pump", Quantity: 1, Rate: 60, Taxable: true},
			{Description: "Labor", Quantity: 2, Rate: 20, Taxable: true},
		}),
		DiscountType:  money.AdjustmentPercent,
		DiscountValue: 10,
		SalesTaxRate:  8,
		DepositType:   money.AdjustmentPercent,
		DepositValue:  25,
	}
}

func TestEstimateUseCase_Create(t *testing.T) {
	t.Run("missing property id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		d := draftFixture()
		d.PropertyID = "  "
		_, err := uc.Create(context.Background(), d, Actor{})
		if !errors.Is(err, ErrInvalidPropertyID) {
			t.Fatalf("expected ErrInvalidPropertyID, got %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		d := draftFixture()
		d.Title = ""
		_, err := uc.Create(context.Background(), d, Actor{})
		if !errors.Is(err, ErrMissingTitle) {
			t.Fatalf("expected ErrMissingTitle, got %v", err)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		d := draftFixture()
		d.Items = nil
		_, err := uc.Create(context.Background(), d, Actor{})
		if !errors.Is(err, ErrMissingItems) {
			t.Fatalf("expected ErrMissingItems, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		history := mock_interfaces.NewMockIHistoryRepository(ctrl)
		uc := NewEstimateUseCase(repo, history)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.ID == "" || e.Version != 1 || e.Status != entities.StatusDraft {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				if !strings.HasPrefix(e.EstimateNumber, "EST-") {
					t.Fatalf("unexpected estimate number %q", e.EstimateNumber)
				}
				if e.TotalAmount != 9720 || e.DepositAmount != 2430 {
					t.Fatalf("totals not derived: total=%d deposit=%d", e.TotalAmount, e.DepositAmount)
				}
				if e.CreatedByTech.ID != "u-1" {
					t.Fatalf("expected creating actor snapshot, got %+v", e.CreatedByTech)
				}
				if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return e, nil
			},
		)
		history.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.HistoryLog{})).DoAndReturn(
			func(_ context.Context, l entities.HistoryLog) (entities.HistoryLog, error) {
				if l.ActionType != entities.ActionCreated || l.PerformedByUserID != "u-1" {
					t.Fatalf("unexpected history log: %+v", l)
				}
				return l, nil
			},
		)

		res, err := uc.Create(context.Background(), draftFixture(), Actor{UserID: "u-1", UserName: "Sam"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, errors.New("db"))

		_, err := uc.Create(context.Background(), draftFixture(), Actor{})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestEstimateUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, err := uc.GetByID(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1"}, nil)

		res, err := uc.GetByID(context.Background(), "est-1")
		if err != nil || res.ID != "est-1" {
			t.Fatalf("unexpected result %+v err %v", res, err)
		}
	})
}

func TestEstimateUseCase_Update(t *testing.T) {
	t.Run("not editable when approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil)

		_, err := uc.Update(context.Background(), "est-1", draftFixture(), 0, Actor{})
		if !errors.Is(err, ErrNotEditable) {
			t.Fatalf("expected ErrNotEditable, got %v", err)
		}
	})

	t.Run("stale expected version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft, Version: 4}, nil)

		_, err := uc.Update(context.Background(), "est-1", draftFixture(), 3, Actor{})
		if !errors.Is(err, ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("rejected estimate returns to draft and clears approval state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		stored := entities.Estimate{
			ID:              "est-1",
			Status:          entities.StatusRejected,
			Version:         2,
			ApprovalToken:   "tok-1",
			RejectionReason: "too expensive",
		}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusDraft {
					t.Fatalf("expected draft, got %s", e.Status)
				}
				if e.ApprovalToken != "" || e.RejectionReason != "" || e.RejectedAt != nil {
					t.Fatalf("approval state not cleared: %+v", e)
				}
				return e, nil
			},
		)

		res, err := uc.Update(context.Background(), "est-1", draftFixture(), 2, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusDraft {
			t.Fatalf("expected draft, got %s", res.Status)
		}
	})
}

func TestEstimateUseCase_UpdateStatus(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.UpdateStatus(context.Background(), "est-1", "", StatusExtras{}, Actor{})
		if !errors.Is(err, ErrMissingStatus) {
			t.Fatalf("expected ErrMissingStatus, got %v", err)
		}
	})

	t.Run("undefined transition rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft}, nil)

		_, err := uc.UpdateStatus(context.Background(), "est-1", entities.StatusInvoiced, StatusExtras{}, Actor{})
		if !errors.Is(err, ErrTransitionNotAllowed) {
			t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
		}
	})

	t.Run("approve stamps manager and timestamp in one write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusPendingApproval}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusApproved {
					t.Fatalf("expected approved, got %s", e.Status)
				}
				if e.ApprovedBy.Name != "Dana" || e.ApprovedAt == nil {
					t.Fatalf("approval extras not applied: %+v", e)
				}
				return e, nil
			},
		)

		extras := StatusExtras{ApprovedByManagerID: "m-1", ApprovedByManagerName: "Dana"}
		_, err := uc.UpdateStatus(context.Background(), "est-1", entities.StatusApproved, extras, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEstimateUseCase_ArchiveAndRestore(t *testing.T) {
	t.Run("reason too short", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.Archive(context.Background(), "est-1", "dup", Actor{})
		if !errors.Is(err, ErrReasonTooShort) {
			t.Fatalf("expected ErrReasonTooShort, got %v", err)
		}
	})

	t.Run("archived estimate cannot be archived again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusArchived}, nil)

		_, err := uc.Archive(context.Background(), "est-1", "duplicate of est-2", Actor{})
		if !errors.Is(err, ErrEstimateNotArchivable) {
			t.Fatalf("expected ErrEstimateNotArchivable, got %v", err)
		}
	})

	t.Run("archive success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusPaid}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusArchived || e.ArchiveReason != "job complete, season over" {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		_, err := uc.Archive(context.Background(), "est-1", "job complete, season over", Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("restore clears archive and delete markers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		stored := entities.Estimate{ID: "est-1", Status: entities.StatusArchived, ArchiveReason: "stale", DeleteReason: "dup"}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusDraft || e.ArchiveReason != "" || e.DeleteReason != "" || e.DeletedAt != nil {
					t.Fatalf("markers not cleared: %+v", e)
				}
				return e, nil
			},
		)

		_, err := uc.Restore(context.Background(), "est-1", Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("restore only from archived", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil)

		_, err := uc.Restore(context.Background(), "est-1", Actor{})
		if !errors.Is(err, ErrTransitionNotAllowed) {
			t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
		}
	})
}

func TestEstimateUseCase_SourceMix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	uc := NewEstimateUseCase(repo, nil)

	repo.EXPECT().List(gomock.Any(), entities.EstimateStatus("")).Return([]entities.Estimate{
		{SourceEmergencyID: "em-1", TotalAmount: 10000},
		{TotalAmount: 500},
	}, nil)

	mix, err := uc.SourceMix(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mix[entities.SourceEmergency].Count != 1 || mix[entities.SourceOfficeStaff].Count != 1 {
		t.Fatalf("unexpected mix: %+v", mix)
	}
}
