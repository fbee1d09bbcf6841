package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrNoRecipient          = errors.New("no approval recipient could be resolved")
	ErrEmailNotConfigured   = errors.New("email transport not configured; set APPROVAL_EMAIL_SENDER")
	ErrEmailDispatchFailed  = errors.New("approval email dispatch failed")
	ErrNotAwaitingApproval  = errors.New("estimate is not awaiting approval")
	ErrNotSendable          = errors.New("estimate cannot be sent for approval in its current status")
	ErrApprovalTokenInvalid = errors.New("approval token invalid")
	ErrApprovalTokenExpired = errors.New("approval token expired")
	ErrMissingApproverName  = errors.New("approver name is required")
	ErrMissingRecorderName  = errors.New("recording staff name is required")
	ErrMissingRejectReason  = errors.New("rejection reason is required")
)

// approvalTokenTTL bounds how long a customer approval link stays usable.
const approvalTokenTTL = 30 * 24 * time.Hour

// SendApprovalInput drives the email approval path.
type SendApprovalInput struct {
	RecipientEmail string // optional override; skips contact resolution
	CustomMessage  string
}

// VerbalDecisionInput records a phone/in-person customer decision.
type VerbalDecisionInput struct {
	Approve       bool
	ApproverName  string
	ApproverTitle string
	RecordedBy    string
	Method        entities.ApprovalMethod
	MethodDetail  string // free text when Method is "other"
}

// TokenView is what the public approval page sees for a token.
type TokenView struct {
	Estimate         entities.Estimate
	AlreadyProcessed bool
	Action           string // "approved" or "rejected" when already processed
}

// IApprovalUseCase coordinates the two approval entry points (email token and
// verbal) feeding the approved/rejected transitions.
type IApprovalUseCase interface {
	SendForApproval(ctx context.Context, id string, in SendApprovalInput, actor Actor) (entities.Estimate, error)
	VerbalDecision(ctx context.Context, id string, in VerbalDecisionInput, actor Actor) (entities.Estimate, error)
	GetByToken(ctx context.Context, token string) (TokenView, error)
	ApproveByToken(ctx context.Context, token, approverName, approverTitle string) (entities.Estimate, error)
	RejectByToken(ctx context.Context, token, approverName, reason string) (entities.Estimate, error)
}

type ApprovalUseCase struct {
	repo       interfaces.IEstimateRepository
	contacts   interfaces.IContactRepository
	dispatcher interfaces.IEmailDispatcher
	history    interfaces.IHistoryRepository
	approveURL string // base URL for the public approval page
}

var _ IApprovalUseCase = (*ApprovalUseCase)(nil)

func NewApprovalUseCase(
	repo interfaces.IEstimateRepository,
	contacts interfaces.IContactRepository,
	dispatcher interfaces.IEmailDispatcher,
	history interfaces.IHistoryRepository,
	approveURL string,
) *ApprovalUseCase {
	return &ApprovalUseCase{repo: repo, contacts: contacts, dispatcher: dispatcher, history: history, approveURL: strings.TrimRight(approveURL, "/")}
}

// SendForApproval dispatches the approval email and, only on a successful
// dispatch, records the fresh token and moves the estimate to
// pending_approval. A resend from pending_approval issues a new token that
// supersedes the old one. A dispatch failure leaves the estimate untouched.
func (u *ApprovalUseCase) SendForApproval(ctx context.Context, id string, in SendApprovalInput, actor Actor) (entities.Estimate, error) {
	// The dispatcher is wired as nil when SES is unconfigured; fail the send
	// outright rather than letting a valid request panic.
	if u.dispatcher == nil {
		return entities.Estimate{}, ErrEmailNotConfigured
	}

	e, err := u.getEstimate(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status != entities.StatusDraft && e.Status != entities.StatusPendingApproval {
		return entities.Estimate{}, ErrNotSendable
	}

	recipients, err := u.resolveRecipients(ctx, e, in.RecipientEmail)
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(recipients) == 0 {
		return entities.Estimate{}, ErrNoRecipient
	}

	token := uuid.NewString()
	subject := fmt.Sprintf("Estimate %s for %s - Approval Requested", e.EstimateNumber, e.PropertyName)
	body := buildApprovalBody(e, in.CustomMessage, u.approveURL+"/"+token)

	email := interfaces.ApprovalEmail{
		To:             recipients[0],
		CC:             recipients[1:],
		Subject:        subject,
		Body:           body,
		EstimateID:     e.ID,
		EstimateNumber: e.EstimateNumber,
	}
	if err := u.dispatcher.Send(ctx, email); err != nil {
		log.Printf("[approval][usecase] email dispatch failed estimate_id=%s recipient=%s err=%v", e.ID, email.To, err)
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrEmailDispatchFailed, err)
	}

	prev := e.Status
	now := time.Now().UTC()
	expires := now.Add(approvalTokenTTL)
	e.Status = entities.StatusPendingApproval
	e.ApprovalToken = token
	e.ApprovalTokenExpiresAt = &expires
	e.ApprovalSentTo = email.To
	e.ApprovalSentAt = &now
	e.SentForApprovalAt = &now
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:          entities.ActionSentForApproval,
		Description:     fmt.Sprintf("Approval request sent to %s", email.To),
		PreviousStatus:  prev,
		NewStatus:       entities.StatusPendingApproval,
		EmailSubject:    subject,
		EmailRecipients: recipients,
	})
	return updated, nil
}

// VerbalDecision records a customer decision taken by phone or in person,
// bypassing the email path entirely.
func (u *ApprovalUseCase) VerbalDecision(ctx context.Context, id string, in VerbalDecisionInput, actor Actor) (entities.Estimate, error) {
	in.ApproverName = strings.TrimSpace(in.ApproverName)
	in.RecordedBy = strings.TrimSpace(in.RecordedBy)
	if in.ApproverName == "" {
		return entities.Estimate{}, ErrMissingApproverName
	}
	if in.RecordedBy == "" {
		return entities.Estimate{}, ErrMissingRecorderName
	}

	e, err := u.getEstimate(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}

	target := entities.StatusApproved
	if !in.Approve {
		target = entities.StatusRejected
	}
	if err := entities.ValidateTransition(e.Status, target); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	method := in.Method
	if method == "" {
		method = entities.ApprovalMethodPhone
	}
	methodLabel := string(method)
	if method == entities.ApprovalMethodOther && strings.TrimSpace(in.MethodDetail) != "" {
		methodLabel = strings.TrimSpace(in.MethodDetail)
	}

	prev := e.Status
	now := time.Now().UTC()
	e.Status = target
	e.CustomerApproverName = in.ApproverName
	e.CustomerApproverTitle = strings.TrimSpace(in.ApproverTitle)
	e.UpdatedAt = now
	if in.Approve {
		e.ApprovedAt = &now
	} else {
		e.RejectedAt = &now
		e.RejectionReason = fmt.Sprintf("Declined by %s via %s (recorded by %s)", in.ApproverName, methodLabel, in.RecordedBy)
	}

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	entry := historyEntry{
		Action:          entities.ActionVerbalApproval,
		Description:     fmt.Sprintf("Verbal approval by %s via %s, recorded by %s", in.ApproverName, methodLabel, in.RecordedBy),
		PreviousStatus:  prev,
		NewStatus:       target,
		ApproverName:    in.ApproverName,
		ApproverTitle:   e.CustomerApproverTitle,
		ApprovalMethod:  method,
		ApprovalDetails: "Recorded by " + in.RecordedBy,
	}
	if !in.Approve {
		entry.Action = entities.ActionRejected
		entry.Description = fmt.Sprintf("Verbal decline by %s via %s, recorded by %s", in.ApproverName, methodLabel, in.RecordedBy)
		entry.Reason = e.RejectionReason
	}
	logHistory(ctx, u.history, updated, actor, entry)
	return updated, nil
}

// GetByToken loads the estimate snapshot for the public approval page.
// A processed estimate is still viewable, flagged AlreadyProcessed.
func (u *ApprovalUseCase) GetByToken(ctx context.Context, token string) (TokenView, error) {
	e, err := u.lookupToken(ctx, token)
	if err != nil {
		return TokenView{}, err
	}
	view := TokenView{Estimate: e}
	switch e.Status {
	case entities.StatusPendingApproval:
	case entities.StatusRejected:
		view.AlreadyProcessed = true
		view.Action = "rejected"
	default:
		// Anything past pending_approval means the customer already approved.
		view.AlreadyProcessed = true
		view.Action = "approved"
	}
	return view, nil
}

func (u *ApprovalUseCase) ApproveByToken(ctx context.Context, token, approverName, approverTitle string) (entities.Estimate, error) {
	approverName = strings.TrimSpace(approverName)
	if approverName == "" {
		return entities.Estimate{}, ErrMissingApproverName
	}
	e, err := u.pendingByToken(ctx, token)
	if err != nil {
		return entities.Estimate{}, err
	}

	now := time.Now().UTC()
	e.Status = entities.StatusApproved
	e.CustomerApproverName = approverName
	e.CustomerApproverTitle = strings.TrimSpace(approverTitle)
	e.ApprovedAt = &now
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, SystemActor(), historyEntry{
		Action:         entities.ActionApproved,
		Description:    fmt.Sprintf("Approved online by %s", approverName),
		PreviousStatus: entities.StatusPendingApproval,
		NewStatus:      entities.StatusApproved,
		ApproverName:   approverName,
		ApproverTitle:  e.CustomerApproverTitle,
		ApprovalMethod: entities.ApprovalMethodEmail,
	})
	return updated, nil
}

func (u *ApprovalUseCase) RejectByToken(ctx context.Context, token, approverName, reason string) (entities.Estimate, error) {
	approverName = strings.TrimSpace(approverName)
	reason = strings.TrimSpace(reason)
	if approverName == "" {
		return entities.Estimate{}, ErrMissingApproverName
	}
	if reason == "" {
		return entities.Estimate{}, ErrMissingRejectReason
	}
	e, err := u.pendingByToken(ctx, token)
	if err != nil {
		return entities.Estimate{}, err
	}

	now := time.Now().UTC()
	e.Status = entities.StatusRejected
	e.CustomerApproverName = approverName
	e.RejectedAt = &now
	e.RejectionReason = reason
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, SystemActor(), historyEntry{
		Action:         entities.ActionRejected,
		Description:    fmt.Sprintf("Rejected online by %s", approverName),
		PreviousStatus: entities.StatusPendingApproval,
		NewStatus:      entities.StatusRejected,
		ApproverName:   approverName,
		ApprovalMethod: entities.ApprovalMethodEmail,
		Reason:         reason,
	})
	return updated, nil
}

func (u *ApprovalUseCase) getEstimate(ctx context.Context, id string) (entities.Estimate, error) {
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

func (u *ApprovalUseCase) lookupToken(ctx context.Context, token string) (entities.Estimate, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Estimate{}, ErrApprovalTokenInvalid
	}
	e, err := u.repo.GetByApprovalToken(ctx, token)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" || e.ApprovalToken != token {
		return entities.Estimate{}, ErrApprovalTokenInvalid
	}
	if e.ApprovalTokenExpiresAt != nil && time.Now().UTC().After(*e.ApprovalTokenExpiresAt) {
		return entities.Estimate{}, ErrApprovalTokenExpired
	}
	return e, nil
}

func (u *ApprovalUseCase) pendingByToken(ctx context.Context, token string) (entities.Estimate, error) {
	e, err := u.lookupToken(ctx, token)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status != entities.StatusPendingApproval {
		return entities.Estimate{}, ErrNotAwaitingApproval
	}
	return e, nil
}

// resolveRecipients builds the candidate list in priority order: property
// contacts with an email, billing contacts not already present, then the
// estimate's snapshotted customer email. An explicit override wins outright.
func (u *ApprovalUseCase) resolveRecipients(ctx context.Context, e entities.Estimate, override string) ([]string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return []string{v}, nil
	}

	seen := map[string]bool{}
	var out []string
	add := func(email string) {
		email = strings.TrimSpace(email)
		if email == "" || seen[strings.ToLower(email)] {
			return
		}
		seen[strings.ToLower(email)] = true
		out = append(out, email)
	}

	if u.contacts != nil {
		contacts, err := u.contacts.GetPropertyContacts(ctx, e.PropertyID)
		if err != nil {
			return nil, err
		}
		for _, c := range contacts {
			add(c.Email)
		}
		billing, err := u.contacts.GetBillingContacts(ctx, e.PropertyID)
		if err != nil {
			return nil, err
		}
		for _, c := range billing {
			add(c.Email)
		}
	}
	add(e.CustomerEmail)
	return out, nil
}

func buildApprovalBody(e entities.Estimate, customMessage, approvalLink string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimate %s for %s\n", e.EstimateNumber, e.PropertyName)
	if e.Title != "" {
		fmt.Fprintf(&b, "%s\n", e.Title)
	}
	b.WriteString("\n")
	if msg := strings.TrimSpace(customMessage); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}
	for _, it := range e.Items {
		fmt.Fprintf(&b, "%d. %s: %g x $%s = $%s\n", it.LineNumber, it.Description, it.Quantity, moneyString(it.Rate), it.Amount.String())
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", e.Subtotal.String())
	if e.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount: -$%s\n", e.DiscountAmount.String())
	}
	if e.SalesTaxAmount > 0 {
		fmt.Fprintf(&b, "Sales Tax (%.2f%%): $%s\n", e.SalesTaxRate, e.SalesTaxAmount.String())
	}
	fmt.Fprintf(&b, "Total: $%s\n", e.TotalAmount.String())
	if e.DepositAmount > 0 {
		fmt.Fprintf(&b, "Deposit due on approval: $%s\n", e.DepositAmount.String())
	}
	b.WriteString("\nReview and approve or decline online:\n")
	b.WriteString(approvalLink)
	b.WriteString("\n")
	return b.String()
}

func moneyString(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}
