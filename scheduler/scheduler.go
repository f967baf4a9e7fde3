// Package scheduler implements background job scheduling
package scheduler

import (
	"log/slog"
	"time"

	"github.com/David-Van-Dyne/pickup-scheduler/config"
	"github.com/David-Van-Dyne/pickup-scheduler/metrics"
	"github.com/David-Van-Dyne/pickup-scheduler/session"
)

// Scheduler manages periodic tasks for the application
type Scheduler struct {
	config   *config.Config
	sessions *session.Registry
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(cfg *config.Config, sessions *session.Registry) *Scheduler {
	return &Scheduler{
		config:   cfg,
		sessions: sessions,
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	go s.scheduleInterval(time.Duration(s.config.Scheduler.SweepInterval)*time.Minute, s.sweepSessions)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	for range ticker.C {
		job()
	}
}

func (s *Scheduler) sweepSessions() {
	removed := s.sessions.Sweep()
	remaining := s.sessions.Len()
	metrics.GetCollector().ActiveSessions.Set(float64(remaining))

	if removed > 0 {
		slog.Info("Swept expired admin sessions", "removed", removed, "active", remaining)
	}
}
