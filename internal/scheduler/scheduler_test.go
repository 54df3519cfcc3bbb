package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/learnquest/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	schedule string
	err      error
	runs     int
}

func (j *fakeJob) Name() string     { return "fake" }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Execute(ctx context.Context) error {
	j.runs++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	return j.err
}

func TestScheduler_RegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.Minute)
	err := s.Register(&fakeJob{schedule: "every tuesday"})
	assert.Error(t, err)
	assert.Empty(t, s.jobs)
}

func TestScheduler_RunAppliesTimeout(t *testing.T) {
	s := NewScheduler(time.Minute)
	job := &fakeJob{schedule: "@daily"}
	require.NoError(t, s.Register(job))

	s.run(job)
	assert.Equal(t, 1, job.runs)
}

func TestStreakResetJob_Execute(t *testing.T) {
	svc := mocks.NewStreakService(t)
	svc.On("ResetLapsed", mock.Anything).Return(int64(3), nil).Once()

	job := NewStreakResetJob(svc, "5 0 * * *")
	assert.Equal(t, "streak_reset", job.Name())
	assert.Equal(t, "5 0 * * *", job.Schedule())
	assert.NoError(t, job.Execute(context.Background()))
}

func TestStreakResetJob_ExecuteError(t *testing.T) {
	svc := mocks.NewStreakService(t)
	svc.On("ResetLapsed", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	err := NewStreakResetJob(svc, "@daily").Execute(context.Background())
	assert.EqualError(t, err, "db down")
}
