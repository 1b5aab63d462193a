// Package scheduler runs periodic maintenance such as snapshot backups.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/wordflash/internal/logger"
)

// Backupper writes one backup of the current store state.
type Backupper interface {
	Backup(ctx context.Context) (string, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	backupper Backupper
	interval  time.Duration
	log       *logger.Logger
}

// New creates a scheduler that backs up every interval. A non-positive
// interval disables backups.
func New(backupper Backupper, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		backupper: backupper,
		interval:  interval,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("periodic backups disabled")
		return nil
	}
	_, err := s.scheduler.Every(s.interval).
		SingletonMode().
		WaitForSchedule().
		Do(s.runBackup)
	if err != nil {
		s.log.Error("failed to schedule backups: %v", err)
		return err
	}
	s.log.Info("backing up every %v", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
		s.log.Debug("scheduler stopped")
	}
}

// Jobs reports how many jobs are scheduled.
func (s *Scheduler) Jobs() int {
	return s.scheduler.Len()
}

func (s *Scheduler) runBackup() {
	ctx := logger.NewContext(context.Background(), s.log.WithField("job", "backup"))
	path, err := s.backupper.Backup(ctx)
	if err != nil {
		s.log.Error("scheduled backup failed: %v", err)
		return
	}
	s.log.Debug("scheduled backup written to %s", path)
}
