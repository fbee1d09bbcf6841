package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound            = errors.New("payment not found")
	ErrInvalidPaymentID           = errors.New("invalid payment id")
	ErrInvalidPaymentPayload      = errors.New("invalid payment payload")
	ErrEstimateNotInvoiced        = errors.New("estimate is not invoiced")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// IPaymentUseCase processes customer payments against invoiced estimates.
// A successful payment persists the provider record and moves the estimate
// to paid in the same call.
type IPaymentUseCase interface {
	ProcessPayment(ctx context.Context, estimateID string, payload json.RawMessage, actor Actor) (entities.EstimatePayment, error)
	GetByID(ctx context.Context, id string) (entities.EstimatePayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.EstimatePayment, error)
}

type PaymentUseCase struct {
	repo         interfaces.IPaymentRepository
	estimateRepo interfaces.IEstimateRepository
	gateway      interfaces.IPaymentGateway
	history      interfaces.IHistoryRepository
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, estimateRepo interfaces.IEstimateRepository, gateway interfaces.IPaymentGateway, history interfaces.IHistoryRepository) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, estimateRepo: estimateRepo, gateway: gateway, history: history}
}

// ProcessPayment charges the estimate total through the payment gateway and,
// on approval, records the payment and marks the estimate paid. The
// transaction amount always comes from the stored estimate, never from the
// caller's payload.
func (u *PaymentUseCase) ProcessPayment(ctx context.Context, estimateID string, payload json.RawMessage, actor Actor) (entities.EstimatePayment, error) {
	log.Printf("[payment][usecase] process start raw_estimate_id=%q payload_len=%d", estimateID, len(payload))
	mockMode := isPaymentGatewayMockEnabled()
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.EstimatePayment{}, ErrInvalidEstimateID
	}
	if len(payload) == 0 || !json.Valid(payload) {
		if !mockMode {
			log.Printf("[payment][usecase] invalid payload estimate_id=%s", estimateID)
			return entities.EstimatePayment{}, ErrInvalidPaymentPayload
		}
		payload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.EstimatePayment{}, errors.New("payment gateway not configured")
	}

	e, err := u.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		return entities.EstimatePayment{}, err
	}
	if e.ID == "" {
		return entities.EstimatePayment{}, ErrEstimateNotFound
	}
	if e.Status != entities.StatusInvoiced {
		log.Printf("[payment][usecase] estimate not invoiced estimate_id=%s status=%s", estimateID, e.Status)
		return entities.EstimatePayment{}, ErrEstimateNotInvoiced
	}

	// Enrich the payload with the reconciliation reference and the amount
	// from the stored estimate.
	amount := e.TotalAmount.Dollars()
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err == nil {
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = e.ID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Invoice %s (%s)", e.InvoiceID, e.EstimateNumber)
		}
		reqMap["transaction_amount"] = amount
		if b, err := json.Marshal(reqMap); err == nil {
			payload = b
		}
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway estimate_id=%s", estimateID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		providerStatus = "approved"
		mockResp := map[string]any{
			"id":                 providerPaymentID,
			"status":             "approved",
			"status_detail":      "accredited",
			"external_reference": e.ID,
			"transaction_amount": amount,
			"date_approved":      time.Now().UTC().Format(time.RFC3339Nano),
		}
		providerResp, _ = json.Marshal(mockResp)
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed estimate_id=%s err=%v", estimateID, err)
			if isGatewayUnauthorized(err) {
				return entities.EstimatePayment{}, ErrPaymentGatewayUnauthorized
			}
			if isGatewayBadRequest(err) {
				return entities.EstimatePayment{}, ErrPaymentGatewayBadRequest
			}
			return entities.EstimatePayment{}, err
		}
	}
	log.Printf("[payment][usecase] payment gateway success estimate_id=%s provider_payment_id=%s provider_status=%s", estimateID, providerPaymentID, providerStatus)

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed estimate_id=%s err=%v", estimateID, err)
	}

	now := time.Now().UTC()
	p := entities.EstimatePayment{
		ID:                 providerPaymentID,
		EstimateID:         e.ID,
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed estimate_id=%s payment_id=%s err=%v", estimateID, p.ID, err)
		return entities.EstimatePayment{}, err
	}

	prev := e.Status
	e.Status = entities.StatusPaid
	e.PaidAt = &now
	e.UpdatedAt = now
	updated, err := u.estimateRepo.Update(ctx, e)
	if err != nil {
		// The payment record exists; the estimate stays invoiced for a retry.
		log.Printf("[payment][usecase] paid transition failed estimate_id=%s payment_id=%s err=%v", estimateID, created.ID, err)
		return created, err
	}

	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionPaid,
		Description:    fmt.Sprintf("Payment %s recorded for invoice %s", created.ID, updated.InvoiceID),
		PreviousStatus: prev,
		NewStatus:      entities.StatusPaid,
	})
	log.Printf("[payment][usecase] process success estimate_id=%s payment_id=%s", estimateID, created.ID)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.EstimatePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.EstimatePayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.EstimatePayment{}, err
	}
	if p.ID == "" {
		return entities.EstimatePayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.EstimatePayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidEstimateID
	}
	return u.repo.ListByEstimateID(ctx, estimateID)
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
