package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"poolops/internal/domain/entities"
	mock_interfaces "poolops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_ProcessPayment(t *testing.T) {
	payload := json.RawMessage(`{"payment_method_id":"visa","token":"tok-1"}`)

	t.Run("invalid estimate id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil)
		_, err := uc.ProcessPayment(context.Background(), "  ", payload, Actor{})
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, gatewayStub(t), nil)
		_, err := uc.ProcessPayment(context.Background(), "est-1", json.RawMessage("{not json"), Actor{})
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("estimate not invoiced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, estimates, gateway, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil)

		_, err := uc.ProcessPayment(context.Background(), "est-1", payload, Actor{})
		if !errors.Is(err, ErrEstimateNotInvoiced) {
			t.Fatalf("expected ErrEstimateNotInvoiced, got %v", err)
		}
	})

	t.Run("success records payment and marks paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(payments, estimates, gateway, nil)

		stored := entities.Estimate{
			ID: "est-1", EstimateNumber: "EST-260042", Status: entities.StatusInvoiced,
			InvoiceID: "1042", TotalAmount: 9720,
		}
		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, enriched json.RawMessage) (string, string, json.RawMessage, error) {
				var m map[string]any
				if err := json.Unmarshal(enriched, &m); err != nil {
					t.Fatalf("enriched payload not json: %v", err)
				}
				if m["external_reference"] != "est-1" {
					t.Fatalf("external_reference not set: %v", m)
				}
				if m["transaction_amount"] != 97.2 {
					t.Fatalf("amount must come from the stored estimate, got %v", m["transaction_amount"])
				}
				return "pay-1", "approved", json.RawMessage(`{"id":"pay-1","status":"approved"}`), nil
			},
		)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.EstimatePayment) (entities.EstimatePayment, error) {
				if p.ID != "pay-1" || p.EstimateID != "est-1" || p.Status != entities.PaymentStatusApproved {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			},
		)
		estimates.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.StatusPaid || e.PaidAt == nil {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		created, err := uc.ProcessPayment(context.Background(), "est-1", payload, Actor{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "pay-1" {
			t.Fatalf("unexpected payment id %q", created.ID)
		}
	})

	t.Run("paid transition failure keeps payment and returns error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(payments, estimates, gateway, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusInvoiced, TotalAmount: 9720}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("pay-1", "approved", json.RawMessage(`{"id":"pay-1"}`), nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.EstimatePayment) (entities.EstimatePayment, error) { return p, nil },
		)
		estimates.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, errors.New("conditional check failed"))

		created, err := uc.ProcessPayment(context.Background(), "est-1", payload, Actor{})
		if err == nil {
			t.Fatalf("expected error")
		}
		if created.ID != "pay-1" {
			t.Fatalf("expected created payment to be returned for retry bookkeeping, got %+v", created)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, estimates, gateway, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusInvoiced}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("401 unauthorized"))

		_, err := uc.ProcessPayment(context.Background(), "est-1", payload, Actor{})
		if !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})
}

// gatewayStub returns a mock gateway with no expectations, for paths that
// fail before reaching it.
func gatewayStub(t *testing.T) *mock_interfaces.MockIPaymentGateway {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mock_interfaces.NewMockIPaymentGateway(ctrl)
}

func TestPaymentUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil)
		_, err := uc.GetByID(context.Background(), " ")
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(payments, nil, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.EstimatePayment{}, nil)

		_, err := uc.GetByID(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestPaymentUseCase_ListByEstimateID(t *testing.T) {
	t.Run("invalid estimate id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil)
		_, err := uc.ListByEstimateID(context.Background(), "")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(payments, nil, nil, nil)

		payments.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return([]entities.EstimatePayment{{ID: "pay-1"}}, nil)

		res, err := uc.ListByEstimateID(context.Background(), "est-1")
		if err != nil || len(res) != 1 {
			t.Fatalf("unexpected result %v err %v", res, err)
		}
	})
}
