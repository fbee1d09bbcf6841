package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
)

var (
	ErrMissingTech          = errors.New("a repair tech assignment is required")
	ErrMissingScheduledDate = errors.New("a scheduled date is required")
	ErrInvalidDeadline      = errors.New("deadline value must be positive")
)

// ScheduleInput assigns a tech and date, optionally with a completion
// deadline timer.
type ScheduleInput struct {
	TechID        string
	TechName      string
	ScheduledDate time.Time
	DeadlineValue int                   // 0 means no deadline
	DeadlineUnit  entities.DeadlineUnit // defaults to hours
	WorkType      string
}

// ISchedulingUseCase moves approved estimates through the scheduling queue:
// into the queue, onto a tech's calendar, back into the queue, and to
// completion. SweepExpiredDeadlines backs the deadline timer.
type ISchedulingUseCase interface {
	NeedsScheduling(ctx context.Context, id string, actor Actor) (entities.Estimate, error)
	Schedule(ctx context.Context, id string, in ScheduleInput, actor Actor) (entities.Estimate, error)
	ReturnToQueue(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error)
	Complete(ctx context.Context, id, techNotes string, actor Actor) (entities.Estimate, error)
	SweepExpiredDeadlines(ctx context.Context) (int, error)
}

type SchedulingUseCase struct {
	repo    interfaces.IEstimateRepository
	history interfaces.IHistoryRepository
}

var _ ISchedulingUseCase = (*SchedulingUseCase)(nil)

func NewSchedulingUseCase(repo interfaces.IEstimateRepository, history interfaces.IHistoryRepository) *SchedulingUseCase {
	return &SchedulingUseCase{repo: repo, history: history}
}

// NeedsScheduling places an approved estimate into the scheduling queue.
func (u *SchedulingUseCase) NeedsScheduling(ctx context.Context, id string, actor Actor) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusNeedsScheduling); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	e.Status = entities.StatusNeedsScheduling
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionNeedsScheduling,
		Description:    "Estimate queued for scheduling",
		PreviousStatus: prev,
		NewStatus:      entities.StatusNeedsScheduling,
	})
	return updated, nil
}

// Schedule assigns a tech and date. Calling it on an already scheduled
// estimate reassigns; the deadline timer restarts from now.
func (u *SchedulingUseCase) Schedule(ctx context.Context, id string, in ScheduleInput, actor Actor) (entities.Estimate, error) {
	if in.TechID == "" && in.TechName == "" {
		return entities.Estimate{}, ErrMissingTech
	}
	if in.ScheduledDate.IsZero() {
		return entities.Estimate{}, ErrMissingScheduledDate
	}
	if in.DeadlineValue < 0 {
		return entities.Estimate{}, ErrInvalidDeadline
	}

	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusScheduled); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	now := time.Now().UTC()
	e.Status = entities.StatusScheduled
	e.RepairTech = entities.PersonRef{ID: in.TechID, Name: in.TechName}
	e.ScheduledDate = &in.ScheduledDate
	e.AutoReturnedAt = nil
	e.AutoReturnedReason = ""
	if in.WorkType != "" {
		e.WorkType = in.WorkType
	}
	if in.DeadlineValue > 0 {
		unit := in.DeadlineUnit
		if unit == "" {
			unit = entities.DeadlineUnitHours
		}
		deadline := entities.DeadlineAfter(now, in.DeadlineValue, unit)
		e.DeadlineValue = in.DeadlineValue
		e.DeadlineUnit = unit
		e.DeadlineAt = &deadline
	} else {
		e.DeadlineValue = 0
		e.DeadlineUnit = ""
		e.DeadlineAt = nil
	}
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	desc := fmt.Sprintf("Scheduled with %s for %s", in.TechName, in.ScheduledDate.Format("2006-01-02"))
	if prev == entities.StatusScheduled {
		desc = fmt.Sprintf("Reassigned to %s for %s", in.TechName, in.ScheduledDate.Format("2006-01-02"))
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionScheduled,
		Description:    desc,
		PreviousStatus: prev,
		NewStatus:      entities.StatusScheduled,
	})
	return updated, nil
}

// ReturnToQueue sends a scheduled estimate back to needs_scheduling, clearing
// the assignment and any running deadline.
func (u *SchedulingUseCase) ReturnToQueue(ctx context.Context, id, reason string, actor Actor) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status != entities.StatusScheduled {
		return entities.Estimate{}, fmt.Errorf("%w: only scheduled estimates can be returned to the queue", ErrTransitionNotAllowed)
	}

	clearAssignment(&e)
	e.Status = entities.StatusNeedsScheduling
	e.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	desc := "Returned to scheduling queue"
	if reason != "" {
		desc += ": " + reason
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionReturnedToQueue,
		Description:    desc,
		PreviousStatus: entities.StatusScheduled,
		NewStatus:      entities.StatusNeedsScheduling,
		Reason:         reason,
	})
	return updated, nil
}

// Complete marks the scheduled work done. The deadline timer stops; tech
// notes are appended to the estimate if provided.
func (u *SchedulingUseCase) Complete(ctx context.Context, id, techNotes string, actor Actor) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := entities.ValidateTransition(e.Status, entities.StatusCompleted); err != nil {
		return entities.Estimate{}, fmt.Errorf("%w: %v", ErrTransitionNotAllowed, err)
	}

	prev := e.Status
	now := time.Now().UTC()
	e.Status = entities.StatusCompleted
	e.CompletedAt = &now
	e.DeadlineAt = nil
	if techNotes != "" {
		if e.TechNotes != "" {
			e.TechNotes += "\n"
		}
		e.TechNotes += techNotes
	}
	e.UpdatedAt = now

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	logHistory(ctx, u.history, updated, actor, historyEntry{
		Action:         entities.ActionCompleted,
		Description:    "Work completed",
		PreviousStatus: prev,
		NewStatus:      entities.StatusCompleted,
	})
	return updated, nil
}

// SweepExpiredDeadlines returns every scheduled estimate whose deadline has
// passed to the scheduling queue, stamping the auto-return fields. Estimates
// already auto-returned once are skipped until rescheduled. Per-item errors
// are logged and do not stop the sweep; the count of returned estimates is
// reported.
func (u *SchedulingUseCase) SweepExpiredDeadlines(ctx context.Context) (int, error) {
	scheduled, err := u.repo.List(ctx, entities.StatusScheduled)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	returned := 0
	for _, e := range scheduled {
		if e.DeadlineAt == nil || e.DeadlineAt.After(now) || e.AutoReturnedAt != nil {
			continue
		}

		reason := fmt.Sprintf("Deadline of %d %s expired without completion", e.DeadlineValue, e.DeadlineUnit)
		tech := e.RepairTech
		clearAssignment(&e)
		e.Status = entities.StatusNeedsScheduling
		e.AutoReturnedAt = &now
		e.AutoReturnedReason = reason
		e.UpdatedAt = now

		updated, err := u.repo.Update(ctx, e)
		if err != nil {
			log.Printf("[scheduling][usecase] deadline sweep update failed estimate_id=%s err=%v", e.ID, err)
			continue
		}
		returned++
		logHistory(ctx, u.history, updated, SystemActor(), historyEntry{
			Action:         entities.ActionReturnedToQueue,
			Description:    fmt.Sprintf("Auto-returned from %s: %s", tech.Name, reason),
			PreviousStatus: entities.StatusScheduled,
			NewStatus:      entities.StatusNeedsScheduling,
			Reason:         reason,
		})
	}
	return returned, nil
}

func (u *SchedulingUseCase) get(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func clearAssignment(e *entities.Estimate) {
	e.RepairTech = entities.PersonRef{}
	e.ScheduledDate = nil
	e.DeadlineValue = 0
	e.DeadlineUnit = ""
	e.DeadlineAt = nil
}
