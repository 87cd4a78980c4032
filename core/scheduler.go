package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler drives periodic RefreshAll sweeps on a cron schedule.
// Stop blocks until an in-flight sweep finishes, honoring the caller's
// context deadline.
type RefreshScheduler struct {
	mu      sync.Mutex
	service *Service
	spec    string
	cron    *cron.Cron
	entryID cron.EntryID
	running bool
}

func NewRefreshScheduler(service *Service, spec string) (*RefreshScheduler, error) {
	if service == nil {
		return nil, fmt.Errorf("core: service is required")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = service.Config().Refresh.Schedule
	}
	if spec == "" {
		return nil, fmt.Errorf("core: refresh schedule is required")
	}
	return &RefreshScheduler{service: service, spec: spec}, nil
}

func (s *RefreshScheduler) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("core: refresh scheduler is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("core: refresh scheduler already started")
	}

	runner := cron.New()
	entryID, err := runner.AddFunc(s.spec, func() {
		report, runErr := s.service.RefreshAll(ctx)
		if runErr != nil {
			s.service.logError(ctx, "scheduled refresh sweep failed", map[string]any{
				"error": runErr.Error(),
			})
			return
		}
		s.service.logInfo(ctx, "scheduled refresh sweep completed", map[string]any{
			"succeeded": len(report.Succeeded),
			"failed":    len(report.Failed),
			"skipped":   len(report.Skipped),
		})
	})
	if err != nil {
		return fmt.Errorf("core: invalid refresh schedule %q: %w", s.spec, err)
	}

	s.cron = runner
	s.entryID = entryID
	s.running = true
	runner.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep, or gives up when
// ctx expires.
func (s *RefreshScheduler) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	runner := s.cron
	running := s.running
	s.cron = nil
	s.running = false
	s.mu.Unlock()

	if !running || runner == nil {
		return nil
	}

	drained := runner.Stop()
	select {
	case <-drained.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether the scheduler currently owns a cron runner.
func (s *RefreshScheduler) Running() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
