package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/bargainhunt/backend/internal/logger"
)

// Runner performs one alert pass
type Runner interface {
	RunOnce(ctx context.Context) (*Result, error)
}

// Scheduler runs the alert job on a fixed interval
type Scheduler struct {
	job        Runner
	interval   time.Duration
	runOnStart bool

	mu         sync.Mutex
	running    bool
	lastRun    time.Time
	lastResult *Result
	runCount   int64
	errorCount int64
}

// NewScheduler creates a scheduler. runOnStart triggers a pass before the first tick.
func NewScheduler(job Runner, interval time.Duration, runOnStart bool) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{job: job, interval: interval, runOnStart: runOnStart}
}

// Start blocks until ctx is cancelled, running the job on every tick
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logger.Warn("scheduler already running", "component", "alerts")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	logger.Info("alert scheduler started", "component", "alerts", "interval", s.interval)

	if s.runOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("alert scheduler stopped", "component", "alerts")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	start := time.Now()
	result, err := s.job.RunOnce(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = start
	s.runCount++
	if err != nil {
		s.errorCount++
		logger.Error("alert run failed", "component", "alerts", "error", err)
		return
	}
	s.lastResult = result
}

// Stats describes the scheduler state
type Stats struct {
	Running    bool          `json:"running"`
	Interval   time.Duration `json:"interval"`
	LastRun    time.Time     `json:"lastRun"`
	RunCount   int64         `json:"runCount"`
	ErrorCount int64         `json:"errorCount"`
	LastResult *Result       `json:"lastResult,omitempty"`
}

// GetStats returns scheduler statistics
func (s *Scheduler) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Running:    s.running,
		Interval:   s.interval,
		LastRun:    s.lastRun,
		RunCount:   s.runCount,
		ErrorCount: s.errorCount,
		LastResult: s.lastResult,
	}
}
