package handlers

import (
	"context"
	"errors"
	"net/http"

	request "poolops/internal/adapter/http/dto/request"
	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/domain/entities"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for estimate CRUD, the generic
// status transition, and archive/restore.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// ListEstimates returns all estimates, optionally filtered by ?status=.
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	status := entities.EstimateStatus(c.Query("status"))
	if propertyID := c.Query("property_id"); propertyID != "" {
		list, err := h.usecase.ListByProperty(c.Request.Context(), propertyID)
		if err != nil {
			appErr := mapEstimateError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, response.FromEstimates(list))
		return
	}

	list, err := h.usecase.List(c.Request.Context(), status)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	e, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := h.usecase.Create(c.Request.Context(), payload.ToDraft(), payload.Actor.ToActor())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(e))
}

func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	var payload request.EstimateUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToDraft(), payload.ExpectedVersion, payload.Actor.ToActor())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// UpdateEstimateStatus applies a guarded generic transition with its extras.
func (h *EstimateHandler) UpdateEstimateStatus(c *gin.Context) {
	var payload request.StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.EstimateStatus(payload.Status), payload.ToExtras(), payload.Actor.ToActor())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	var payload request.ReasonRequest
	// Body is optional for hard delete; the reason is kept when provided.
	_ = c.ShouldBindJSON(&payload)

	if err := h.usecase.Delete(c.Request.Context(), c.Param("id"), payload.Actor.ToActor()); err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EstimateHandler) ArchiveEstimate(c *gin.Context) {
	h.reasonedUpdate(c, h.usecase.Archive)
}

func (h *EstimateHandler) SoftDeleteEstimate(c *gin.Context) {
	h.reasonedUpdate(c, h.usecase.SoftDelete)
}

func (h *EstimateHandler) reasonedUpdate(
	c *gin.Context,
	fn func(ctx context.Context, id, reason string, actor usecase.Actor) (entities.Estimate, error),
) {
	var payload request.ReasonRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := fn(c.Request.Context(), c.Param("id"), payload.Reason, payload.Actor.ToActor())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *EstimateHandler) RestoreEstimate(c *gin.Context) {
	var payload struct {
		Actor request.ActorRequest `json:"actor"`
	}
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.Restore(c.Request.Context(), c.Param("id"), payload.Actor.ToActor())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// SourceMixReport returns the per-source-type counts and totals.
func (h *EstimateHandler) SourceMixReport(c *gin.Context) {
	mix, err := h.usecase.SourceMix(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, mix)
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidPropertyID),
		errors.Is(err, usecase.ErrMissingTitle),
		errors.Is(err, usecase.ErrMissingItems),
		errors.Is(err, usecase.ErrMissingStatus),
		errors.Is(err, usecase.ErrReasonTooShort):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Estimate was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrTransitionNotAllowed),
		errors.Is(err, usecase.ErrNotEditable),
		errors.Is(err, usecase.ErrEstimateNotArchivable):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", err.Error(), http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
