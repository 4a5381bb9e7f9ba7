package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"resume-parser/internal/shared/telemetry"
)

// Sweeper closes expired jobs on a cron schedule.
type Sweeper struct {
	svc  *Service
	cron *cron.Cron
}

// NewSweeper schedules CloseExpired. It returns nil when schedule is empty or "off".
func NewSweeper(ctx context.Context, svc *Service, schedule string) (*Sweeper, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" || strings.EqualFold(schedule, "off") {
		return nil, nil
	}
	s := &Sweeper{svc: svc, cron: cron.New()}
	if _, err := s.cron.AddFunc(schedule, func() { s.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("schedule job sweeper %q: %w", schedule, err)
	}
	return s, nil
}

// Run performs one sweep.
func (s *Sweeper) Run(ctx context.Context) {
	closed, err := s.svc.CloseExpired(ctx)
	if err != nil {
		telemetry.Error("jobs.sweep.failed", map[string]any{"error": err.Error()})
		return
	}
	if closed > 0 {
		telemetry.Info("jobs.sweep.closed", map[string]any{"closed": closed})
	}
}

// Start begins the schedule.
func (s *Sweeper) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep.
func (s *Sweeper) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
}
