package request

import (
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase"
)

// ScheduleRequest assigns a tech and date, optionally starting a completion
// deadline timer.
type ScheduleRequest struct {
	TechID        string       `json:"tech_id"`
	TechName      string       `json:"tech_name" binding:"required"`
	ScheduledDate time.Time    `json:"scheduled_date" binding:"required"`
	DeadlineValue int          `json:"deadline_value" binding:"gte=0"`
	DeadlineUnit  string       `json:"deadline_unit" binding:"omitempty,oneof=hours days"`
	WorkType      string       `json:"work_type"`
	Actor         ActorRequest `json:"actor"`
}

func (r ScheduleRequest) ToInput() usecase.ScheduleInput {
	return usecase.ScheduleInput{
		TechID:        r.TechID,
		TechName:      r.TechName,
		ScheduledDate: r.ScheduledDate,
		DeadlineValue: r.DeadlineValue,
		DeadlineUnit:  entities.DeadlineUnit(r.DeadlineUnit),
		WorkType:      r.WorkType,
	}
}

// ReturnToQueueRequest sends a scheduled estimate back to the queue.
type ReturnToQueueRequest struct {
	Reason string       `json:"reason"`
	Actor  ActorRequest `json:"actor"`
}

// CompleteRequest marks scheduled work done.
type CompleteRequest struct {
	TechNotes string       `json:"tech_notes"`
	Actor     ActorRequest `json:"actor"`
}
