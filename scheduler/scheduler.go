package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mayagamaleldin/graduationproject/config"
	"github.com/mayagamaleldin/graduationproject/logger"
)

// Job is the work the scheduler triggers once a day.
type Job func(ctx context.Context) error

// validateHourMinute clamps invalid values to midnight.
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("invalid schedule hour, using 0", "hour", hour)
		hour = 0
	}
	if minute < 0 || minute > 59 {
		logger.Warn("invalid schedule minute, using 0", "minute", minute)
		minute = 0
	}
	return hour, minute
}

// getNextTimePoint returns the next hour:minute at or after now.
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// TaskStatus describes the daily task.
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler re-runs the batch analysis at a fixed time of day.
type Scheduler struct {
	hour, minute  int
	checkInterval time.Duration
	job           Job

	mutex  sync.Mutex
	status TaskStatus
	wg     sync.WaitGroup
}

// NewScheduler builds a scheduler from the scheduler config section.
func NewScheduler(cfg *config.Config, job Job) *Scheduler {
	hour, minute := validateHourMinute(cfg.Scheduler.Hour, cfg.Scheduler.Minute)
	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60
	}

	s := &Scheduler{
		hour:          hour,
		minute:        minute,
		checkInterval: time.Duration(checkInterval) * time.Second,
		job:           job,
	}
	s.status = TaskStatus{
		NextRun:     getNextTimePoint(time.Now(), hour, minute),
		Description: fmt.Sprintf("profile batch (%02d:%02d)", hour, minute),
	}
	return s
}

// Status returns a copy of the task status.
func (s *Scheduler) Status() TaskStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status
}

// Run checks the schedule until ctx is done, then waits for a running job.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info("Scheduler started",
		"task", s.status.Description,
		"next_run", s.status.NextRun.Format("2006-01-02 15:04:05"),
		"check_interval_sec", int(s.checkInterval.Seconds()))

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("Scheduler stopped")
			return nil
		case now := <-ticker.C:
			s.checkTask(ctx, now)
		}
	}
}

// checkTask starts the job when its time has come and it is not running.
func (s *Scheduler) checkTask(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.status.IsRunning || s.status.NextRun.IsZero() {
		return
	}
	if now.After(s.status.NextRun) || now.Equal(s.status.NextRun) {
		s.status.IsRunning = true
		s.wg.Add(1)
		go s.runTask(ctx, now)
	}
}

func (s *Scheduler) runTask(ctx context.Context, now time.Time) {
	defer s.wg.Done()
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		s.status.IsRunning = false
		s.status.LastRun = now
		s.status.NextRun = getNextTimePoint(now.Add(time.Minute), s.hour, s.minute)
		logger.Info("Task finished", "task", s.status.Description, "next_run", s.status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	logger.Info("Task started", "task", s.status.Description)
	if err := s.job(ctx); err != nil {
		logger.Error("Task failed", "task", s.status.Description, "error", err)
	}
}
