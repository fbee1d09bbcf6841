package handlers

import (
	"errors"
	"log"
	"net/http"

	request "poolops/internal/adapter/http/dto/request"
	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidInvoicingPayload = pkg.NewDomainErrorSimple("INVALID_INVOICING_INPUT", "Invalid invoicing payload", http.StatusBadRequest)
)

// InvoicingHandler handles the invoicing queue routes and the external
// connection status surface.
type InvoicingHandler struct {
	usecase usecase.IInvoicingUseCase
}

func NewInvoicingHandler(uc usecase.IInvoicingUseCase) *InvoicingHandler {
	return &InvoicingHandler{usecase: uc}
}

func (h *InvoicingHandler) ReadyToInvoice(c *gin.Context) {
	var payload request.ReadyToInvoiceRequest
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.ReadyToInvoice(c.Request.Context(), c.Param("id"), payload.WONumber, payload.Actor.ToActor())
	if err != nil {
		appErr := mapInvoicingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// Invoice creates the external invoice for one estimate. A missing external
// connection is surfaced as 503 so the frontend can prompt a reconnect; any
// other external failure still returns the locally invoiced estimate.
func (h *InvoicingHandler) Invoice(c *gin.Context) {
	id := c.Param("id")
	var payload request.InvoiceRequest
	_ = c.ShouldBindJSON(&payload)

	e, err := h.usecase.Invoice(c.Request.Context(), id, payload.ToOptions(), payload.Actor.ToActor())
	if err != nil {
		log.Printf("[invoicing][handler] invoice failed estimate_id=%s err=%v", id, err)
		appErr := mapInvoicingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// BatchInvoice invoices several estimates, combined or separate.
func (h *InvoicingHandler) BatchInvoice(c *gin.Context) {
	var payload request.BatchInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicingPayload.HTTPStatus, errInvalidInvoicingPayload.ToHTTPError())
		return
	}

	results, err := h.usecase.BatchInvoice(c.Request.Context(), payload.EstimateIDs, usecase.BatchMode(payload.Mode), payload.ToOptions(), payload.Actor.ToActor())
	if err != nil {
		log.Printf("[invoicing][handler] batch failed count=%d err=%v", len(payload.EstimateIDs), err)
		appErr := mapInvoicingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBatchResults(results))
}

func (h *InvoicingHandler) ConnectionStatus(c *gin.Context) {
	status, err := h.usecase.ConnectionStatus(c.Request.Context())
	if err != nil {
		appErr := mapInvoicingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *InvoicingHandler) Disconnect(c *gin.Context) {
	if err := h.usecase.Disconnect(c.Request.Context()); err != nil {
		appErr := mapInvoicingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapInvoicingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvoicingNotConnected):
		return pkg.NewDomainErrorSimple("QB_NOT_CONNECTED", "QuickBooks is not connected", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrEmptyBatch),
		errors.Is(err, usecase.ErrInvalidBatchMode),
		errors.Is(err, usecase.ErrMixedProperties):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransitionNotAllowed):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", err.Error(), http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
