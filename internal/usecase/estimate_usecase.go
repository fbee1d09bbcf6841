package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/domain/money"
	"poolops/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEstimateNotFound      = errors.New("estimate not found")
	ErrInvalidEstimateID     = errors.New("invalid estimate id")
	ErrInvalidPropertyID     = errors.New("invalid property id")
	ErrMissingTitle          = errors.New("estimate title is required")
	ErrMissingItems          = errors.New("estimate requires at least one line item")
	ErrMissingStatus         = errors.New("status is required")
	ErrTransitionNotAllowed  = errors.New("status transition not allowed")
	ErrNotEditable           = errors.New("estimate is not editable in its current status")
	ErrReasonTooShort        = errors.New("a reason of at least 5 characters is required")
	ErrEstimateNotArchivable = errors.New("estimate cannot be archived")
	ErrVersionConflict       = interfaces.ErrVersionConflict
)

// EstimateDraft is the input for creating or editing an estimate.
type EstimateDraft struct {
	PropertyID    string
	PropertyName  string
	CustomerName  string
	CustomerEmail string
	Address       string
	Title         string
	Description   string
	Items         []entities.LineItem
	DiscountType  money.AdjustmentType
	DiscountValue float64
	SalesTaxRate  float64
	DepositType   money.AdjustmentType
	DepositValue  float64
	WorkType      string
	TechNotes     string
	SourceType    entities.SourceType
	SourceRepair  string
	SourceEmerg   string
	ReportedDate  *time.Time
	Photos        []string
	Attachments   []entities.Attachment
}

// StatusExtras carries the side-effect fields a generic status update may
// attach alongside the new status.
type StatusExtras struct {
	ApprovedByManagerID   string
	ApprovedByManagerName string
	ManagerNotes          string
	RejectionReason       string
	RepairTechID          string
	RepairTechName        string
	ScheduledDate         *time.Time
	InvoiceID             string
}

// IEstimateUseCase exposes estimate CRUD plus the guarded generic status
// transition used by the PATCH /estimates/:id/status surface. Workflow-
// specific transitions (approval, scheduling, invoicing, payment) live in
// their own orchestrators.
type IEstimateUseCase interface {
	List(ctx context.Context, status entities.EstimateStatus) ([]entities.Estimate, error)
	ListByProperty(ctx context.Context, propertyID string) ([]entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	Create(ctx context.Context, draft EstimateDraft, actor Actor) (entities.Estimate, error)
	Update(ctx context.Context, id string, draft EstimateDraft, expectedVersion int64, actor Actor) (entities.Estimate, error)
	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, extras StatusExtras, actor Actor) (entities.Estimate, error)
	Delete(ctx context.Context, id string, actor Actor) error
	Archive(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error)
	SoftDelete(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error)
	Restore(ctx context.Context, id string, actor Actor) (entities.Estimate, error)
	SourceMix(ctx context.Context) (map[entities.SourceType]entities.SourceMixEntry, error)
}

type EstimateUseCase struct {
	repo    interfaces.IEstimateRepository
	history interfaces.IHistoryRepository
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, history interfaces.IHistoryRepository) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, history: history}
}

// newEstimateNumber builds the human-facing EST-YYRRRR reference. Not
// guaranteed unique; the opaque id is the identity.
func newEstimateNumber(now time.Time) string {
	return fmt.Sprintf("EST-%02d%04d", now.Year()%100, rand.IntN(10000))
}

func (u *EstimateUseCase) List(ctx context.Context, status entities.EstimateStatus) ([]entities.Estimate, error) {
	if status != "" && !status.Valid() {
		return nil, ErrMissingStatus
	}
	return u.repo.List(ctx, status)
}

func (u *EstimateUseCase) ListByProperty(ctx context.Context, propertyID string) ([]entities.Estimate, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, ErrInvalidPropertyID
	}
	return u.repo.ListByProperty(ctx, propertyID)
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
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

func (u *EstimateUseCase) Create(ctx context.Context, draft EstimateDraft, actor Actor) (entities.Estimate, error) {
	if strings.TrimSpace(draft.PropertyID) == "" {
		return entities.Estimate{}, ErrInvalidPropertyID
	}
	if strings.TrimSpace(draft.Title) == "" {
		return entities.Estimate{}, ErrMissingTitle
	}
	if len(draft.Items) == 0 {
		return entities.Estimate{}, ErrMissingItems
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:             uuid.NewString(),
		EstimateNumber: newEstimateNumber(now),
		Version:        1,
		Status:         entities.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyDraft(&e, draft)
	if actor.UserID != "" || actor.UserName != "" {
		e.CreatedByTech = entities.PersonRef{ID: actor.UserID, Name: actor.UserName}
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	logHistory(ctx, u.history, created, actor, historyEntry{
		Action:      entities.ActionCreated,
		Description: fmt.Sprintf("Estimate %s created for %s", created.EstimateNumber, created.PropertyName),
		NewStatus:   entities.StatusDraft,
	})
	return created, nil
}

// Update edits an estimate's content. Only draft estimates are editable;
// a rejected estimate is edited via the revise-and-resend path, which returns
// it to draft in the same write and clears the prior approval outcome.
func (u *EstimateUseCase) Update(ctx context.Context, id string, draft EstimateDraft, expectedVersion int64, actor Actor) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}

	prev := e.Status
	switch e.Status {
	case entities.StatusDraft:
	case entities.StatusRejected:
		e.Status = entities.StatusDraft
		e.RejectedAt = nil
		e.RejectionReason = ""
		e.ApprovalToken = ""
		e.ApprovalTokenExpiresAt = nil
		e.ApprovalSentTo = ""
		e.ApprovalSentAt = nil
	default:
		return entities.Estimate{}, ErrNotEditable
	}

	if expectedVersion != 0 && expectedVersion != e.Version {
		return entities.Estimate{}, ErrVersionConflict
	}
	if strings.TrimSpace(draft.Title) == "" {
		return entities.Estimate{}, ErrMissingTitle
	}
	if len(draft.Items) == 0 {
		return entities.Estimate{}, ErrMissingItems
	}

	applyDraft(&e, draft)
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	entry := historyEntry{
		Action:      entities.ActionUpdated,
		Description: fmt.Sprintf("Estimate %s updated", updated.EstimateNumber),
	}
	if prev == entities.StatusRejected {
		entry.Description = fmt.Sprintf("Estimate %s revised after rejection", updated.EstimateNumber)
		entry.PreviousStatus = prev
		entry.NewStatus = entities.StatusDraft
	}
	logHistory(ctx, u.history, updated, actor, entry)
	return updated, nil
}

// UpdateStatus applies a guarded generic transition with its extras in one
// atomic write. Undefined transitions are rejected, never silently applied.
func (u *EstimateUseCase) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, extras StatusExtras, actor Actor) (entities.Estimate, error) {
	if status == "" {
		return entities.Estimate{}, ErrMissingStatus
	}
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, status); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	now := time.Now().UTC()
	e.Status = status
	e.UpdatedAt = now

	switch status {
	case entities.StatusApproved:
		e.ApprovedBy = entities.PersonRef{ID: extras.ApprovedByManagerID, Name: extras.ApprovedByManagerName}
		e.ManagerNotes = extras.ManagerNotes
		e.ApprovedAt = &now
	case entities.StatusRejected:
		e.RejectionReason = extras.RejectionReason
		e.RejectedAt = &now
	case entities.StatusScheduled:
		if extras.RepairTechID != "" {
			e.RepairTech = entities.PersonRef{ID: extras.RepairTechID, Name: extras.RepairTechName}
		}
		if extras.ScheduledDate != nil {
			e.ScheduledDate = extras.ScheduledDate
		}
	case entities.StatusCompleted:
		e.CompletedAt = &now
	case entities.StatusInvoiced:
		e.InvoicedAt = &now
		if extras.InvoiceID != "" {
			e.InvoiceID = extras.InvoiceID
		}
	case entities.StatusPaid:
		e.PaidAt = &now
	}

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         historyActionForStatus(status),
		Description:    fmt.Sprintf("Status changed from %s to %s", prev, status),
		PreviousStatus: prev,
		NewStatus:      status,
		Reason:         extras.RejectionReason,
	})
	return updated, nil
}

func (u *EstimateUseCase) Delete(ctx context.Context, id string, actor Actor) error {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	logHistory(ctx, u.history, e, actor, historyEntry{
		Action:         entities.ActionDeleted,
		Description:    fmt.Sprintf("Estimate %s permanently deleted", e.EstimateNumber),
		PreviousStatus: e.Status,
	})
	return nil
}

func (u *EstimateUseCase) Archive(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 5 {
		return entities.Estimate{}, ErrReasonTooShort
	}
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !entities.CanTransition(e.Status, entities.StatusArchived) {
		return entities.Estimate{}, ErrEstimateNotArchivable
	}

	prev := e.Status
	e.Status = entities.StatusArchived
	e.ArchiveReason = reason
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionArchived,
		Description:    "Estimate archived: " + reason,
		PreviousStatus: prev,
		NewStatus:      entities.StatusArchived,
		Reason:         reason,
	})
	return updated, nil
}

// SoftDelete marks the estimate deleted without removing the record, keeping
// it restorable and the audit trail intact.
func (u *EstimateUseCase) SoftDelete(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 5 {
		return entities.Estimate{}, ErrReasonTooShort
	}
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}

	prev := e.Status
	now := time.Now().UTC()
	e.Status = entities.StatusArchived
	e.DeletedAt = &now
	e.DeleteReason = reason
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionDeleted,
		Description:    "Estimate deleted: " + reason,
		PreviousStatus: prev,
		NewStatus:      entities.StatusArchived,
		Reason:         reason,
	})
	return updated, nil
}

func (u *EstimateUseCase) Restore(ctx context.Context, id string, actor Actor) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusDraft); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	e.Status = entities.StatusDraft
	e.ArchiveReason = ""
	e.DeletedAt = nil
	e.DeleteReason = ""
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionRestored,
		Description:    "Estimate restored",
		PreviousStatus: prev,
		NewStatus:      entities.StatusDraft,
	})
	return updated, nil
}

func (u *EstimateUseCase) SourceMix(ctx context.Context) (map[entities.SourceType]entities.SourceMixEntry, error) {
	all, err := u.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return entities.SourceMix(all), nil
}

func applyDraft(e *entities.Estimate, draft EstimateDraft) {
	if draft.PropertyID != "" {
		e.PropertyID = strings.TrimSpace(draft.PropertyID)
	}
	e.PropertyName = strings.TrimSpace(draft.PropertyName)
	e.CustomerName = strings.TrimSpace(draft.CustomerName)
	e.CustomerEmail = strings.TrimSpace(draft.CustomerEmail)
	e.Address = strings.TrimSpace(draft.Address)
	e.Title = strings.TrimSpace(draft.Title)
	e.Description = strings.TrimSpace(draft.Description)
	e.WorkType = draft.WorkType
	e.TechNotes = draft.TechNotes
	e.SourceType = draft.SourceType
	e.SourceRepairJobID = draft.SourceRepair
	e.SourceEmergencyID = draft.SourceEmerg
	e.ReportedDate = draft.ReportedDate
	e.Photos = draft.Photos
	e.Attachments = draft.Attachments

	e.Items = entities.NormalizeItems(draft.Items)
	e.DiscountType = defaultAdjustment(draft.DiscountType)
	e.DiscountValue = draft.DiscountValue
	e.SalesTaxRate = draft.SalesTaxRate
	e.DepositType = defaultAdjustment(draft.DepositType)
	e.DepositValue = draft.DepositValue
	e.Recalculate()
}

func defaultAdjustment(t money.AdjustmentType) money.AdjustmentType {
	if t == "" {
		return money.AdjustmentPercent
	}
	return t
}

func historyActionForStatus(s entities.EstimateStatus) entities.HistoryAction {
	switch s {
	case entities.StatusPendingApproval:
		return entities.ActionSentForApproval
	case entities.StatusApproved:
		return entities.ActionApproved
	case entities.StatusRejected:
		return entities.ActionRejected
	case entities.StatusNeedsScheduling:
		return entities.ActionNeedsScheduling
	case entities.StatusScheduled:
		return entities.ActionScheduled
	case entities.StatusCompleted:
		return entities.ActionCompleted
	case entities.StatusReadyToInvoice:
		return entities.ActionReadyToInvoice
	case entities.StatusInvoiced:
		return entities.ActionInvoiced
	case entities.StatusPaid:
		return entities.ActionPaid
	case entities.StatusArchived:
		return entities.ActionArchived
	default:
		return entities.ActionUpdated
	}
}
