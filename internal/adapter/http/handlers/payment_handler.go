package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "poolops/internal/adapter/http/dto/request"
	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment processing against invoiced estimates.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePaymentByEstimateID processes a payment for the invoiced estimate in
// the path and moves it to paid on approval.
func (h *PaymentHandler) CreatePaymentByEstimateID(c *gin.Context) {
	estimateID := c.Param("id")
	log.Printf("[payment][handler] create start estimate_id=%s", estimateID)

	var payload request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload estimate_id=%s err=%v", estimateID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if len(payload.ProviderPayload) == 0 {
		payload.ProviderPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.ProcessPayment(c.Request.Context(), estimateID, payload.ProviderPayload, payload.Actor.ToActor())
	if err != nil {
		log.Printf("[payment][handler] create failed estimate_id=%s err=%v", estimateID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success estimate_id=%s payment_id=%s status=%s", estimateID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromPayment(created))
}

// ListPaymentsByEstimateID returns the payments recorded for an estimate.
func (h *PaymentHandler) ListPaymentsByEstimateID(c *gin.Context) {
	estimateID := c.Param("id")

	payments, err := h.usecase.ListByEstimateID(c.Request.Context(), estimateID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotInvoiced):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAUTHORIZED", "Payment gateway rejected the credentials", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
