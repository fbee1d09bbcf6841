package handlers

import (
	"errors"
	"net/http"

	request "poolops/internal/adapter/http/dto/request"
	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidSchedulingPayload = pkg.NewDomainErrorSimple("INVALID_SCHEDULING_INPUT", "Invalid scheduling payload", http.StatusBadRequest)
)

// SchedulingHandler handles the scheduling queue routes.
type SchedulingHandler struct {
	usecase usecase.ISchedulingUseCase
}

func NewSchedulingHandler(uc usecase.ISchedulingUseCase) *SchedulingHandler {
	return &SchedulingHandler{usecase: uc}
}

func (h *SchedulingHandler) NeedsScheduling(c *gin.Context) {
	var payload struct {
		Actor request.ActorRequest `json:"actor"`
	}
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.NeedsScheduling(c.Request.Context(), c.Param("id"), payload.Actor.ToActor())
	if err != nil {
		appErr := mapSchedulingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// Schedule assigns a tech and date; calling it again reassigns and restarts
// any deadline timer.
func (h *SchedulingHandler) Schedule(c *gin.Context) {
	var payload request.ScheduleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSchedulingPayload.HTTPStatus, errInvalidSchedulingPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.Schedule(c.Request.Context(), c.Param("id"), payload.ToInput(), payload.Actor.ToActor())
	if err != nil {
		appErr := mapSchedulingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *SchedulingHandler) ReturnToQueue(c *gin.Context) {
	var payload request.ReturnToQueueRequest
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.ReturnToQueue(c.Request.Context(), c.Param("id"), payload.Reason, payload.Actor.ToActor())
	if err != nil {
		appErr := mapSchedulingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *SchedulingHandler) Complete(c *gin.Context) {
	var payload request.CompleteRequest
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.Complete(c.Request.Context(), c.Param("id"), payload.TechNotes, payload.Actor.ToActor())
	if err != nil {
		appErr := mapSchedulingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func mapSchedulingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrMissingTech),
		errors.Is(err, usecase.ErrMissingScheduledDate),
		errors.Is(err, usecase.ErrInvalidDeadline):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransitionNotAllowed):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", err.Error(), http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
