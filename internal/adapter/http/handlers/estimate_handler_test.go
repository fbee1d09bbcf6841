package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

const createBody = `{
	"property_id": "prop-1",
	"property_name": "Lakeside HOA",
	"title": "Pump replacement",
	"items": [{"description": "Pump", "quantity": 1, "rate": 600, "taxable": true}],
	"actor": {"user_id": "u-1", "user_name": "Dana"}
}`

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("negative quantity rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		body := `{"property_id":"prop-1","title":"Pump","items":[{"description":"Pump","quantity":-1,"rate":600}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase returns mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrInvalidPropertyID)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), gomock.Any(), usecase.Actor{UserID: "u-1", UserName: "Dana"}).
			DoAndReturn(func(_ context.Context, draft usecase.EstimateDraft, _ usecase.Actor) (entities.Estimate, error) {
				if draft.PropertyID != "prop-1" || draft.Title != "Pump replacement" {
					t.Fatalf("unexpected draft %+v", draft)
				}
				return entities.Estimate{ID: "est-1", EstimateNumber: "EST-260001", PropertyID: "prop-1", Title: draft.Title, Status: entities.StatusDraft, TotalAmount: 60000, CreatedAt: now, UpdatedAt: now}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "est-1" || body["total"] != "600.00" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_GetEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "approved" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_ListEstimates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("status filter forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates", h.ListEstimates)

		uc.EXPECT().List(gomock.Any(), entities.StatusScheduled).Return([]entities.Estimate{{ID: "est-1"}, {ID: "est-2"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates?status=scheduled", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("expected 2 estimates, got %d", len(body))
		}
	})

	t.Run("property filter wins over status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates", h.ListEstimates)

		uc.EXPECT().ListByProperty(gomock.Any(), "prop-1").Return([]entities.Estimate{{ID: "est-1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates?property_id=prop-1&status=draft", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("repository failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates", h.ListEstimates)

		uc.EXPECT().List(gomock.Any(), entities.EstimateStatus("")).Return(nil, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_UpdateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("version conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PUT("/v1/estimates/:id", h.UpdateEstimate)

		uc.EXPECT().Update(gomock.Any(), "est-1", gomock.Any(), int64(3), gomock.Any()).Return(entities.Estimate{}, usecase.ErrVersionConflict)

		body := `{"property_id":"prop-1","title":"Pump replacement","items":[{"description":"Pump","quantity":1,"rate":600}],"expected_version":3}`
		req := httptest.NewRequest(http.MethodPut, "/v1/estimates/est-1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PUT("/v1/estimates/:id", h.UpdateEstimate)

		uc.EXPECT().Update(gomock.Any(), "est-1", gomock.Any(), int64(0), gomock.Any()).Return(entities.Estimate{}, usecase.ErrNotEditable)

		body := `{"property_id":"prop-1","title":"Pump replacement","items":[{"description":"Pump","quantity":1,"rate":600}]}`
		req := httptest.NewRequest(http.MethodPut, "/v1/estimates/est-1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_UpdateEstimateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/status", h.UpdateEstimateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/status", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("transition not allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/status", h.UpdateEstimateStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), "est-1", entities.StatusPaid, gomock.Any(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrTransitionNotAllowed)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("approve with extras", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/status", h.UpdateEstimateStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), "est-1", entities.StatusApproved, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ entities.EstimateStatus, extras usecase.StatusExtras, _ usecase.Actor) (entities.Estimate, error) {
				if extras.ApprovedByManagerName != "Morgan" {
					t.Fatalf("unexpected extras %+v", extras)
				}
				return entities.Estimate{ID: "est-1", Status: entities.StatusApproved}, nil
			})

		body := `{"status":"approved","approved_by_manager_id":"mgr-1","approved_by_manager_name":"Morgan"}`
		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_ArchiveAndRestore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("archive requires a reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/archive", h.ArchiveEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/archive", bytes.NewBufferString(`{"reason":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("archive success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/archive", h.ArchiveEstimate)

		uc.EXPECT().Archive(gomock.Any(), "est-1", "duplicate entry", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.StatusArchived}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/archive", bytes.NewBufferString(`{"reason":"duplicate entry"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("restore without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/restore", h.RestoreEstimate)

		uc.EXPECT().Restore(gomock.Any(), "est-1", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.StatusDraft}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/restore", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("delete returns no content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.DELETE("/v1/estimates/:id", h.DeleteEstimate)

		uc.EXPECT().Delete(gomock.Any(), "est-1", gomock.Any()).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_SourceMixReport(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc)

	r := gin.New()
	r.GET("/v1/estimates/reports/source-mix", h.SourceMixReport)

	uc.EXPECT().SourceMix(gomock.Any()).Return(map[entities.SourceType]entities.SourceMixEntry{
		entities.SourceRepairTech: {Count: 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/estimates/reports/source-mix", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMapEstimateError(t *testing.T) {
	if got := mapEstimateError(usecase.ErrInvalidEstimateID); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapEstimateError(usecase.ErrReasonTooShort); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapEstimateError(usecase.ErrEstimateNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapEstimateError(usecase.ErrVersionConflict); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapEstimateError(usecase.ErrEstimateNotArchivable); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapEstimateError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
