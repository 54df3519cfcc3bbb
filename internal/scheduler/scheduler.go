package scheduler

import (
	"context"
	"time"

	"anoa.com/learnquest/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job is a unit of background work run on a cron schedule.
type Job interface {
	Name() string
	Schedule() string
	Execute(ctx context.Context) error
}

// Scheduler runs registered jobs in UTC.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
}

func NewScheduler(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		jobs:    make([]Job, 0),
		timeout: timeout,
	}
}

// Register schedules job; an invalid cron spec is returned as an error.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule(), func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	s.jobs = append(s.jobs, job)
	logger.Log.Infow("📅 job scheduled", "job", job.Name(), "schedule", job.Schedule())
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger.Log.Infow("starting scheduled job", "job", job.Name())
	if err := job.Execute(ctx); err != nil {
		logger.Log.Errorw("❌ job failed", "job", job.Name(), "error", err)
		return
	}
	logger.Log.Infow("✅ job completed", "job", job.Name())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Infow("🚀 scheduler started", "jobs", len(s.jobs))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("🛑 scheduler stopped")
}
