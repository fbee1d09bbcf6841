package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
)

var (
	ErrInvoicingNotConnected = interfaces.ErrInvoicingNotConnected
	ErrEmptyBatch            = errors.New("batch invoicing requires at least one estimate")
	ErrInvalidBatchMode      = errors.New("batch mode must be combined or separate")
	ErrMixedProperties       = errors.New("combined invoicing requires estimates of a single property")
)

// BatchMode selects how a batch of estimates maps to external invoices.
type BatchMode string

const (
	BatchCombined BatchMode = "combined" // one invoice covering every estimate
	BatchSeparate BatchMode = "separate" // one invoice per estimate
)

// InvoiceOptions tunes a single external invoice creation.
type InvoiceOptions struct {
	SendEmail bool
	CCEmails  []string
	BCCEmails []string
	Memo      string
	Terms     string
}

// BatchItemResult reports the outcome for one estimate of a batch. Failures
// are isolated: one item failing does not roll back the others.
type BatchItemResult struct {
	EstimateID            string `json:"estimate_id"`
	EstimateNumber        string `json:"estimate_number"`
	Invoiced              bool   `json:"invoiced"`
	InvoiceID             string `json:"invoice_id,omitempty"`
	ExternalInvoiceID     string `json:"external_invoice_id,omitempty"`
	ExternalInvoiceNumber string `json:"external_invoice_number,omitempty"`
	InvoiceError          string `json:"invoice_error,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// IInvoicingUseCase moves completed estimates through invoicing. A missing
// external connection blocks invoicing outright; a transient external failure
// still records the estimate as invoiced locally, preserving the error for
// later reconciliation.
type IInvoicingUseCase interface {
	ReadyToInvoice(ctx context.Context, id, woNumber string, actor Actor) (entities.Estimate, error)
	Invoice(ctx context.Context, id string, opts InvoiceOptions, actor Actor) (entities.Estimate, error)
	BatchInvoice(ctx context.Context, ids []string, mode BatchMode, opts InvoiceOptions, actor Actor) ([]BatchItemResult, error)
	ConnectionStatus(ctx context.Context) (interfaces.ConnectionStatus, error)
	Disconnect(ctx context.Context) error
}

type InvoicingUseCase struct {
	repo    interfaces.IEstimateRepository
	gateway interfaces.IInvoicingGateway
	history interfaces.IHistoryRepository
}

var _ IInvoicingUseCase = (*InvoicingUseCase)(nil)

func NewInvoicingUseCase(repo interfaces.IEstimateRepository, gateway interfaces.IInvoicingGateway, history interfaces.IHistoryRepository) *InvoicingUseCase {
	return &InvoicingUseCase{repo: repo, gateway: gateway, history: history}
}

// newInvoiceNumber builds the local INV-YY-NNNNN reference used when the
// external system did not issue one.
func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%02d-%05d", now.Year()%100, rand.IntN(100000))
}

// ReadyToInvoice moves a completed estimate into the invoicing queue,
// optionally recording the customer's work-order number.
func (u *InvoicingUseCase) ReadyToInvoice(ctx context.Context, id, woNumber string, actor Actor) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusReadyToInvoice); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	e.Status = entities.StatusReadyToInvoice
	if woNumber = strings.TrimSpace(woNumber); woNumber != "" {
		e.WONumber = woNumber
		e.WOReceived = true
	}
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionReadyToInvoice,
		Description:    "Estimate ready to invoice",
		PreviousStatus: prev,
		NewStatus:      entities.StatusReadyToInvoice,
	})
	return updated, nil
}

// Invoice creates the external invoice and marks the estimate invoiced.
//
// Failure handling is two-tier: ErrInvoicingNotConnected returns unchanged
// (the operator must reconnect first), while any other gateway error still
// marks the estimate invoiced locally with the error preserved on the record.
func (u *InvoicingUseCase) Invoice(ctx context.Context, id string, opts InvoiceOptions, actor Actor) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusInvoiced); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	result, gwErr := u.gateway.CreateInvoice(ctx, buildInvoicePayload(e, opts))
	if errors.Is(gwErr, interfaces.ErrInvoicingNotConnected) {
		return entities.Estimate{}, gwErr
	}

	updated, err := u.markInvoiced(ctx, e, result, gwErr, actor)
	if err != nil {
		return entities.Estimate{}, err
	}
	return updated, nil
}

// BatchInvoice invoices several ready_to_invoice estimates at once. The
// external connection is checked up front: a missing connection fails the
// whole batch before any estimate changes. After that, item failures are
// isolated and reported per item.
func (u *InvoicingUseCase) BatchInvoice(ctx context.Context, ids []string, mode BatchMode, opts InvoiceOptions, actor Actor) ([]BatchItemResult, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	if mode != BatchCombined && mode != BatchSeparate {
		return nil, ErrInvalidBatchMode
	}

	status, err := u.gateway.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Connected {
		return nil, interfaces.ErrInvoicingNotConnected
	}

	estimates := make([]entities.Estimate, 0, len(ids))
	results := make([]BatchItemResult, 0, len(ids))
	for _, id := range ids {
		e, err := u.get(ctx, id)
		if err != nil {
			results = append(results, BatchItemResult{EstimateID: id, Error: err.Error()})
			continue
		}
		if err := entities.ValidateTransition(e.Status, entities.StatusInvoiced); err != nil {
			results = append(results, BatchItemResult{EstimateID: e.ID, EstimateNumber: e.EstimateNumber, Error: err.Error()})
			continue
		}
		estimates = append(estimates, e)
	}
	if len(estimates) == 0 {
		return results, nil
	}

	if mode == BatchCombined {
		combined, err := u.invoiceCombined(ctx, estimates, opts, actor)
		if err != nil {
			return nil, err
		}
		return append(results, combined...), nil
	}

	for _, e := range estimates {
		result, gwErr := u.gateway.CreateInvoice(ctx, buildInvoicePayload(e, opts))
		if errors.Is(gwErr, interfaces.ErrInvoicingNotConnected) {
			// Connection dropped mid-batch; remaining items stay untouched.
			results = append(results, BatchItemResult{EstimateID: e.ID, EstimateNumber: e.EstimateNumber, Error: gwErr.Error()})
			continue
		}
		updated, err := u.markInvoiced(ctx, e, result, gwErr, actor)
		if err != nil {
			results = append(results, BatchItemResult{EstimateID: e.ID, EstimateNumber: e.EstimateNumber, Error: err.Error()})
			continue
		}
		results = append(results, itemResult(updated))
	}
	return results, nil
}

func (u *InvoicingUseCase) invoiceCombined(ctx context.Context, estimates []entities.Estimate, opts InvoiceOptions, actor Actor) ([]BatchItemResult, error) {
	propertyID := estimates[0].PropertyID
	for _, e := range estimates[1:] {
		if e.PropertyID != propertyID {
			return nil, ErrMixedProperties
		}
	}

	// The seed payload already carries the first estimate's lines and photos;
	// clear both so the loop below adds each estimate exactly once.
	payload := buildInvoicePayload(estimates[0], opts)
	payload.Lines = nil
	payload.PhotoURLs = nil
	numbers := make([]string, 0, len(estimates))
	for _, e := range estimates {
		numbers = append(numbers, e.EstimateNumber)
		payload.Lines = append(payload.Lines, invoiceLines(e)...)
		payload.PhotoURLs = append(payload.PhotoURLs, e.Photos...)
	}
	payload.EstimateNumber = strings.Join(numbers, ", ")

	result, gwErr := u.gateway.CreateInvoice(ctx, payload)
	if errors.Is(gwErr, interfaces.ErrInvoicingNotConnected) {
		return nil, gwErr
	}

	results := make([]BatchItemResult, 0, len(estimates))
	for _, e := range estimates {
		updated, err := u.markInvoiced(ctx, e, result, gwErr, actor)
		if err != nil {
			results = append(results, BatchItemResult{EstimateID: e.ID, EstimateNumber: e.EstimateNumber, Error: err.Error()})
			continue
		}
		results = append(results, itemResult(updated))
	}
	return results, nil
}

// markInvoiced applies the invoiced transition for either outcome of the
// gateway call. On gateway failure the external fields stay empty and the
// error text is preserved on the estimate.
func (u *InvoicingUseCase) markInvoiced(ctx context.Context, e entities.Estimate, result interfaces.InvoiceResult, gwErr error, actor Actor) (entities.Estimate, error) {
	prev := e.Status
	now := time.Now().UTC()
	e.Status = entities.StatusInvoiced
	e.InvoicedAt = &now
	e.UpdatedAt = now

	if gwErr != nil {
		log.Printf("[invoicing][usecase] external invoice failed estimate_id=%s err=%v", e.ID, gwErr)
		e.ExternalInvoiceID = ""
		e.ExternalInvoiceNumber = ""
		e.InvoiceID = newInvoiceNumber(now)
		e.InvoiceError = gwErr.Error()
	} else {
		e.ExternalInvoiceID = result.InvoiceID
		e.ExternalInvoiceNumber = result.InvoiceNumber
		e.InvoiceID = result.InvoiceNumber
		if e.InvoiceID == "" {
			e.InvoiceID = newInvoiceNumber(now)
		}
		e.InvoiceError = ""
	}

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	desc := fmt.Sprintf("Invoice %s created", updated.InvoiceID)
	if gwErr != nil {
		desc = fmt.Sprintf("Invoiced locally; external invoice failed: %v", gwErr)
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionInvoiced,
		Description:    desc,
		PreviousStatus: prev,
		NewStatus:      entities.StatusInvoiced,
	})
	return updated, nil
}

func (u *InvoicingUseCase) ConnectionStatus(ctx context.Context) (interfaces.ConnectionStatus, error) {
	return u.gateway.Status(ctx)
}

func (u *InvoicingUseCase) Disconnect(ctx context.Context) error {
	return u.gateway.Disconnect(ctx)
}

func (u *InvoicingUseCase) get(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func buildInvoicePayload(e entities.Estimate, opts InvoiceOptions) interfaces.InvoicePayload {
	memo := opts.Memo
	if memo == "" {
		memo = e.Title
	}
	return interfaces.InvoicePayload{
		CustomerName:   e.CustomerName,
		CustomerEmail:  e.CustomerEmail,
		CCEmails:       opts.CCEmails,
		BCCEmails:      opts.BCCEmails,
		PropertyName:   e.PropertyName,
		EstimateNumber: e.EstimateNumber,
		Lines:          invoiceLines(e),
		Memo:           memo,
		Terms:          opts.Terms,
		PhotoURLs:      e.Photos,
		SendEmail:      opts.SendEmail,
	}
}

func invoiceLines(e entities.Estimate) []interfaces.InvoiceLine {
	lines := make([]interfaces.InvoiceLine, 0, len(e.Items))
	for _, it := range e.Items {
		lines = append(lines, interfaces.InvoiceLine{
			Description: fmt.Sprintf("%s: %s", e.EstimateNumber, it.Description),
			Quantity:    it.Quantity,
			Rate:        fmt.Sprintf("%.2f", it.Rate),
			Amount:      it.Amount.Decimal().StringFixed(2),
			SKU:         it.SKU,
		})
	}
	return lines
}

func itemResult(e entities.Estimate) BatchItemResult {
	return BatchItemResult{
		EstimateID:            e.ID,
		EstimateNumber:        e.EstimateNumber,
		Invoiced:              true,
		InvoiceID:             e.InvoiceID,
		ExternalInvoiceID:     e.ExternalInvoiceID,
		ExternalInvoiceNumber: e.ExternalInvoiceNumber,
		InvoiceError:          e.InvoiceError,
	}
}
