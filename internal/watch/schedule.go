package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// scheduler wraps a gocron scheduler running a single periodic job.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler(interval time.Duration, task func()) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}

	s.Start()
	return &scheduler{s: s}, nil
}

func (s *scheduler) stop() {
	if err := s.s.Shutdown(); err != nil {
		slog.Warn("Scheduler shutdown failed", slog.String("error", err.Error()))
	}
}
