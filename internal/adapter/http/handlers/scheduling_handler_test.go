package handlers

import (
	"bytes"
	"context"
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

func TestSchedulingHandler_Schedule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("tech name required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/schedule", h.Schedule)

		body := `{"scheduled_date":"2026-09-01T09:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/schedule", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("deadline unit must be hours or days", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/schedule", h.Schedule)

		body := `{"tech_name":"Lee","scheduled_date":"2026-09-01T09:00:00Z","deadline_value":2,"deadline_unit":"weeks"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/schedule", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success forwards input", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/schedule", h.Schedule)

		uc.EXPECT().Schedule(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in usecase.ScheduleInput, _ usecase.Actor) (entities.Estimate, error) {
				if in.TechName != "Lee" || in.DeadlineValue != 48 || in.DeadlineUnit != entities.DeadlineUnitHours {
					t.Fatalf("unexpected input %+v", in)
				}
				if !in.ScheduledDate.Equal(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected date %v", in.ScheduledDate)
				}
				return entities.Estimate{ID: "est-1", Status: entities.StatusScheduled}, nil
			})

		body := `{"tech_id":"tech-1","tech_name":"Lee","scheduled_date":"2026-09-01T09:00:00Z","deadline_value":48,"deadline_unit":"hours"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/schedule", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("wrong state maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/schedule", h.Schedule)

		uc.EXPECT().Schedule(gomock.Any(), "est-1", gomock.Any(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrTransitionNotAllowed)

		body := `{"tech_name":"Lee","scheduled_date":"2026-09-01T09:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/schedule", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestSchedulingHandler_QueueRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("needs scheduling without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/needs-scheduling", h.NeedsScheduling)

		uc.EXPECT().NeedsScheduling(gomock.Any(), "est-1", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.StatusNeedsScheduling}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/needs-scheduling", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("return to queue with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/return-to-queue", h.ReturnToQueue)

		uc.EXPECT().ReturnToQueue(gomock.Any(), "est-1", "tech unavailable", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.StatusNeedsScheduling}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/return-to-queue", bytes.NewBufferString(`{"reason":"tech unavailable"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("complete with notes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/complete", h.Complete)

		uc.EXPECT().Complete(gomock.Any(), "est-1", "replaced impeller", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.StatusCompleted}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/complete", bytes.NewBufferString(`{"tech_notes":"replaced impeller"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("complete not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISchedulingUseCase(ctrl)
		h := NewSchedulingHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/complete", h.Complete)

		uc.EXPECT().Complete(gomock.Any(), "missing", "", gomock.Any()).Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/missing/complete", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
