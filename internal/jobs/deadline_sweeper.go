package jobs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"poolops/internal/usecase"
)

const defaultSweepInterval = 5 * time.Minute

// DeadlineSweeper periodically returns scheduled estimates whose completion
// deadline has passed back to the scheduling queue.
//
// Env vars:
//   - DEADLINE_SWEEP_INTERVAL_SECONDS (default: 300)
type DeadlineSweeper struct {
	scheduling usecase.ISchedulingUseCase
	interval   time.Duration
}

func NewDeadlineSweeper(scheduling usecase.ISchedulingUseCase) *DeadlineSweeper {
	interval := defaultSweepInterval
	if raw := os.Getenv("DEADLINE_SWEEP_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			interval = time.Duration(secs) * time.Second
		}
	}
	return &DeadlineSweeper{scheduling: scheduling, interval: interval}
}

// Start launches the sweep loop in a goroutine. The loop stops when ctx is
// cancelled.
func (s *DeadlineSweeper) Start(ctx context.Context) {
	log.Printf("[jobs][sweeper] starting interval=%s", s.interval)
	go s.run(ctx)
}

func (s *DeadlineSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[jobs][sweeper] stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *DeadlineSweeper) sweep(ctx context.Context) {
	returned, err := s.scheduling.SweepExpiredDeadlines(ctx)
	if err != nil {
		log.Printf("[jobs][sweeper] sweep failed err=%v", err)
		return
	}
	if returned > 0 {
		log.Printf("[jobs][sweeper] sweep complete returned=%d", returned)
	}
}
