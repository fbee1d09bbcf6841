package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poolops/internal/adapter/http/handlers/mocks"
	"poolops/internal/domain/entities"
	"poolops/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_CreatePaymentByEstimateID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty payload defaults to empty object", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/payments", h.CreatePaymentByEstimateID)

		uc.EXPECT().ProcessPayment(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, payload json.RawMessage, _ usecase.Actor) (entities.EstimatePayment, error) {
				if string(payload) != "{}" {
					t.Fatalf("expected empty object payload, got %s", payload)
				}
				return entities.EstimatePayment{ID: "pay-1", EstimateID: "est-1", Status: entities.PaymentStatusApproved, Date: time.Now().UTC()}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/payments", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["payment_id"] != "pay-1" || resp["status"] != "approved" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("provider payload forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/payments", h.CreatePaymentByEstimateID)

		uc.EXPECT().ProcessPayment(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, payload json.RawMessage, _ usecase.Actor) (entities.EstimatePayment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("payload not json: %v", err)
				}
				if m["token"] != "card-token" {
					t.Fatalf("unexpected payload %s", payload)
				}
				return entities.EstimatePayment{ID: "pay-1", EstimateID: "est-1", Status: entities.PaymentStatusApproved}, nil
			})

		body := `{"provider_payload":{"token":"card-token","installments":1}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not invoiced maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/payments", h.CreatePaymentByEstimateID)

		uc.EXPECT().ProcessPayment(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).Return(entities.EstimatePayment{}, usecase.ErrEstimateNotInvoiced)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/payments", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway unauthorized maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/payments", h.CreatePaymentByEstimateID)

		uc.EXPECT().ProcessPayment(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).Return(entities.EstimatePayment{}, usecase.ErrPaymentGatewayUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/payments", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ListPaymentsByEstimateID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id/payments", h.ListPaymentsByEstimateID)

		uc.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return([]entities.EstimatePayment{
			{ID: "pay-1", EstimateID: "est-1", Status: entities.PaymentStatusApproved},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp) != 1 || resp[0]["estimate_id"] != "est-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("invalid id maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id/payments", h.ListPaymentsByEstimateID)

		uc.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return(nil, usecase.ErrInvalidEstimateID)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
