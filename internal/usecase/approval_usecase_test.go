package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
	mock_interfaces "poolops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestApprovalUseCase_SendForApproval(t *testing.T) {
	t.Run("unconfigured dispatcher blocks the send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		// Wired exactly as the router does when SES setup fails: a nil
		// dispatcher. The send must fail cleanly before touching the store.
		uc := NewApprovalUseCase(repo, nil, nil, nil, "http://localhost:8080/v1/approvals")

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{})
		if !errors.Is(err, ErrEmailNotConfigured) {
			t.Fatalf("expected ErrEmailNotConfigured, got %v", err)
		}
	})

	t.Run("only draft or pending may be sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, nil, dispatcher, nil, "http://localhost:8080/v1/approvals")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil)

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{})
		if !errors.Is(err, ErrNotSendable) {
			t.Fatalf("expected ErrNotSendable, got %v", err)
		}
	})

	t.Run("no recipient resolvable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		contacts := mock_interfaces.NewMockIContactRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, contacts, dispatcher, nil, "http://localhost:8080/v1/approvals")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", PropertyID: "prop-1", Status: entities.StatusDraft}, nil)
		contacts.EXPECT().GetPropertyContacts(gomock.Any(), "prop-1").Return(nil, nil)
		contacts.EXPECT().GetBillingContacts(gomock.Any(), "prop-1").Return(nil, nil)

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{})
		if !errors.Is(err, ErrNoRecipient) {
			t.Fatalf("expected ErrNoRecipient, got %v", err)
		}
	})

	t.Run("dispatch failure leaves estimate untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, nil, dispatcher, nil, "http://localhost:8080/v1/approvals")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft, CustomerEmail: "owner@example.com"}, nil)
		dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("ses throttled"))
		// No Update expectation: a failed dispatch must not record a send.

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{})
		if !errors.Is(err, ErrEmailDispatchFailed) {
			t.Fatalf("expected ErrEmailDispatchFailed, got %v", err)
		}
	})

	t.Run("send success records token and moves to pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		contacts := mock_interfaces.NewMockIContactRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, contacts, dispatcher, nil, "http://localhost:8080/v1/approvals")

		stored := entities.Estimate{
			ID: "est-1", EstimateNumber: "EST-260042", PropertyID: "prop-1",
			PropertyName: "Lakeside HOA", Status: entities.StatusDraft,
			CustomerEmail: "owner@example.com",
		}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		contacts.EXPECT().GetPropertyContacts(gomock.Any(), "prop-1").Return([]entities.Contact{
			{Email: "manager@example.com", Primary: true},
		}, nil)
		contacts.EXPECT().GetBillingContacts(gomock.Any(), "prop-1").Return([]entities.Contact{
			{Email: "Manager@Example.com"}, // duplicate, case-insensitive
			{Email: "billing@example.com"},
		}, nil)

		var sent interfaces.ApprovalEmail
		dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, email interfaces.ApprovalEmail) error {
				sent = email
				return nil
			},
		)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusPendingApproval {
					t.Fatalf("expected pending_approval, got %s", e.Status)
				}
				if e.ApprovalToken == "" || e.ApprovalTokenExpiresAt == nil || e.ApprovalSentAt == nil {
					t.Fatalf("token state not recorded: %+v", e)
				}
				if e.ApprovalSentTo != "manager@example.com" {
					t.Fatalf("unexpected recipient %q", e.ApprovalSentTo)
				}
				return e, nil
			},
		)

		res, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{UserID: "u-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent.To != "manager@example.com" {
			t.Fatalf("expected primary property contact first, got %q", sent.To)
		}
		if len(sent.CC) != 2 || sent.CC[0] != "billing@example.com" || sent.CC[1] != "owner@example.com" {
			t.Fatalf("unexpected cc list %v", sent.CC)
		}
		if !strings.Contains(sent.Body, res.ApprovalToken) {
			t.Fatalf("approval link missing from body")
		}
	})

	t.Run("explicit override wins over contacts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, nil, dispatcher, nil, "http://localhost:8080/v1/approvals")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft}, nil)
		dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, email interfaces.ApprovalEmail) error {
				if email.To != "override@example.com" || len(email.CC) != 0 {
					t.Fatalf("unexpected recipients: %+v", email)
				}
				return nil
			},
		)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) { return e, nil },
		)

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{RecipientEmail: "override@example.com"}, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("resend supersedes prior token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIEmailDispatcher(ctrl)
		uc := NewApprovalUseCase(repo, nil, dispatcher, nil, "http://localhost:8080/v1/approvals")

		stored := entities.Estimate{
			ID: "est-1", Status: entities.StatusPendingApproval,
			CustomerEmail: "owner@example.com", ApprovalToken: "old-token",
		}
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.ApprovalToken == "old-token" || e.ApprovalToken == "" {
					t.Fatalf("expected fresh token, got %q", e.ApprovalToken)
				}
				if e.Status != entities.StatusPendingApproval {
					t.Fatalf("expected pending_approval, got %s", e.Status)
				}
				return e, nil
			},
		)

		_, err := uc.SendForApproval(context.Background(), "est-1", SendApprovalInput{}, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestApprovalUseCase_VerbalDecision(t *testing.T) {
	t.Run("missing names", func(t *testing.T) {
		uc := NewApprovalUseCase(nil, nil, nil, nil, "")
		_, err := uc.VerbalDecision(context.Background(), "est-1", VerbalDecisionInput{Approve: true, RecordedBy: "Dana"}, Actor{})
		if !errors.Is(err, ErrMissingApproverName) {
			t.Fatalf("expected ErrMissingApproverName, got %v", err)
		}
		_, err = uc.VerbalDecision(context.Background(), "est-1", VerbalDecisionInput{Approve: true, ApproverName: "Pat"}, Actor{})
		if !errors.Is(err, ErrMissingRecorderName) {
			t.Fatalf("expected ErrMissingRecorderName, got %v", err)
		}
	})

	t.Run("approve from draft bypasses email path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusApproved || e.CustomerApproverName != "Pat" || e.ApprovedAt == nil {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		in := VerbalDecisionInput{Approve: true, ApproverName: "Pat", ApproverTitle: "HOA President", RecordedBy: "Dana", Method: entities.ApprovalMethodPhone}
		_, err := uc.VerbalDecision(context.Background(), "est-1", in, Actor{UserID: "u-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("decline records who and how", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusPendingApproval}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusRejected || e.RejectedAt == nil {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				if e.RejectionReason != "Declined by Pat via text message (recorded by Dana)" {
					t.Fatalf("unexpected rejection reason %q", e.RejectionReason)
				}
				return e, nil
			},
		)

		in := VerbalDecisionInput{ApproverName: "Pat", RecordedBy: "Dana", Method: entities.ApprovalMethodOther, MethodDetail: "text message"}
		_, err := uc.VerbalDecision(context.Background(), "est-1", in, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusPaid}, nil)

		_, err := uc.VerbalDecision(context.Background(), "est-1", VerbalDecisionInput{Approve: true, ApproverName: "Pat", RecordedBy: "Dana"}, Actor{})
		if !errors.Is(err, ErrTransitionNotAllowed) {
			t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
		}
	})
}

func TestApprovalUseCase_TokenFlows(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	past := time.Now().UTC().Add(-time.Hour)

	pending := func() entities.Estimate {
		return entities.Estimate{
			ID: "est-1", Status: entities.StatusPendingApproval,
			ApprovalToken: "tok-1", ApprovalTokenExpiresAt: &future,
		}
	}

	t.Run("get by token pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(pending(), nil)

		view, err := uc.GetByToken(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.AlreadyProcessed {
			t.Fatalf("expected pending view")
		}
	})

	t.Run("get by token already approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		e := pending()
		e.Status = entities.StatusScheduled
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(e, nil)

		view, err := uc.GetByToken(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !view.AlreadyProcessed || view.Action != "approved" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		e := pending()
		e.ApprovalTokenExpiresAt = &past
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(e, nil)

		_, err := uc.GetByToken(context.Background(), "tok-1")
		if !errors.Is(err, ErrApprovalTokenExpired) {
			t.Fatalf("expected ErrApprovalTokenExpired, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-x").Return(entities.Estimate{}, nil)

		_, err := uc.GetByToken(context.Background(), "tok-x")
		if !errors.Is(err, ErrApprovalTokenInvalid) {
			t.Fatalf("expected ErrApprovalTokenInvalid, got %v", err)
		}
	})

	t.Run("approve by token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(pending(), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusApproved || e.CustomerApproverName != "Pat" || e.ApprovedAt == nil {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		_, err := uc.ApproveByToken(context.Background(), "tok-1", "Pat", "HOA President")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("approve by token requires pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		e := pending()
		e.Status = entities.StatusApproved
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(e, nil)

		_, err := uc.ApproveByToken(context.Background(), "tok-1", "Pat", "")
		if !errors.Is(err, ErrNotAwaitingApproval) {
			t.Fatalf("expected ErrNotAwaitingApproval, got %v", err)
		}
	})

	t.Run("reject by token requires reason", func(t *testing.T) {
		uc := NewApprovalUseCase(nil, nil, nil, nil, "")
		_, err := uc.RejectByToken(context.Background(), "tok-1", "Pat", "  ")
		if !errors.Is(err, ErrMissingRejectReason) {
			t.Fatalf("expected ErrMissingRejectReason, got %v", err)
		}
	})

	t.Run("reject by token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewApprovalUseCase(repo, nil, nil, nil, "")

		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok-1").Return(pending(), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusRejected || e.RejectionReason != "price too high" {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		_, err := uc.RejectByToken(context.Background(), "tok-1", "Pat", "price too high")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
