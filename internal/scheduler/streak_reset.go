package scheduler

import (
	"context"

	streakService "anoa.com/learnquest/internal/modules/streak/service"
	"anoa.com/learnquest/pkg/logger"
)

// StreakResetJob zeroes streaks whose owners missed a day.
type StreakResetJob struct {
	service  streakService.StreakService
	schedule string
}

func NewStreakResetJob(service streakService.StreakService, schedule string) *StreakResetJob {
	return &StreakResetJob{service: service, schedule: schedule}
}

func (j *StreakResetJob) Name() string     { return "streak_reset" }
func (j *StreakResetJob) Schedule() string { return j.schedule }

func (j *StreakResetJob) Execute(ctx context.Context) error {
	n, err := j.service.ResetLapsed(ctx)
	if err != nil {
		return err
	}
	logger.Log.Infow("lapsed streaks reset", "count", n)
	return nil
}
