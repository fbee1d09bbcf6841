package handlers

import (
	"errors"
	"log"
	"net/http"

	request "poolops/internal/adapter/http/dto/request"
	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/domain/entities"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidApprovalPayload = pkg.NewDomainErrorSimple("INVALID_APPROVAL_INPUT", "Invalid approval payload", http.StatusBadRequest)
)

// ApprovalHandler handles the email and verbal approval paths plus the
// public token routes used by the customer-facing approval page.
type ApprovalHandler struct {
	usecase usecase.IApprovalUseCase
}

func NewApprovalHandler(uc usecase.IApprovalUseCase) *ApprovalHandler {
	return &ApprovalHandler{usecase: uc}
}

// SendForApproval dispatches the approval email; the status only moves to
// pending_approval when the email is accepted by the transport.
func (h *ApprovalHandler) SendForApproval(c *gin.Context) {
	id := c.Param("id")
	var payload request.SendApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.SendForApproval(c.Request.Context(), id, usecase.SendApprovalInput{
		RecipientEmail: payload.RecipientEmail,
		CustomMessage:  payload.CustomMessage,
	}, payload.Actor.ToActor())
	if err != nil {
		log.Printf("[approval][handler] send failed estimate_id=%s err=%v", id, err)
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// VerbalApproval records a phone/in-person customer decision.
func (h *ApprovalHandler) VerbalApproval(c *gin.Context) {
	id := c.Param("id")
	var payload request.VerbalApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.VerbalDecision(c.Request.Context(), id, usecase.VerbalDecisionInput{
		Approve:       payload.Decision == "approve",
		ApproverName:  payload.ApproverName,
		ApproverTitle: payload.ApproverTitle,
		RecordedBy:    payload.RecordedBy,
		Method:        entities.ApprovalMethod(payload.Method),
		MethodDetail:  payload.MethodDetail,
	}, payload.Actor.ToActor())
	if err != nil {
		log.Printf("[approval][handler] verbal decision failed estimate_id=%s err=%v", id, err)
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// GetByToken serves the public approval page lookup. No authentication: the
// token itself is the credential.
func (h *ApprovalHandler) GetByToken(c *gin.Context) {
	view, err := h.usecase.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTokenView(view))
}

func (h *ApprovalHandler) ApproveByToken(c *gin.Context) {
	token := c.Param("token")
	var payload request.TokenApproveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.ApproveByToken(c.Request.Context(), token, payload.ApproverName, payload.ApproverTitle)
	if err != nil {
		log.Printf("[approval][handler] token approve failed err=%v", err)
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func (h *ApprovalHandler) RejectByToken(c *gin.Context) {
	token := c.Param("token")
	var payload request.TokenRejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	e, err := h.usecase.RejectByToken(c.Request.Context(), token, payload.ApproverName, payload.Reason)
	if err != nil {
		log.Printf("[approval][handler] token reject failed err=%v", err)
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

func mapApprovalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrMissingApproverName),
		errors.Is(err, usecase.ErrMissingRecorderName),
		errors.Is(err, usecase.ErrMissingRejectReason),
		errors.Is(err, usecase.ErrNoRecipient):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrApprovalTokenInvalid):
		return pkg.NewDomainErrorSimple("APPROVAL_TOKEN_INVALID", "Approval link is invalid", http.StatusNotFound)
	case errors.Is(err, usecase.ErrApprovalTokenExpired):
		return pkg.NewDomainErrorSimple("APPROVAL_TOKEN_EXPIRED", "Approval link has expired", http.StatusGone)
	case errors.Is(err, usecase.ErrNotSendable),
		errors.Is(err, usecase.ErrNotAwaitingApproval),
		errors.Is(err, usecase.ErrTransitionNotAllowed):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrEmailNotConfigured):
		return pkg.NewDomainErrorSimple("EMAIL_NOT_CONFIGURED", err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrEmailDispatchFailed):
		return pkg.NewDomainErrorSimple("EMAIL_DISPATCH_FAILED", "Approval email could not be sent", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
