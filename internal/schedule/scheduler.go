package schedule

import (
	"context"
	"fmt"

	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"github.com/sirupsen/logrus"
)

// Scheduler runs a briefing on a cron expression with a seconds field,
// e.g. "0 0 7 * * *" for every day at 07:00.
type Scheduler struct {
	sched  quartz.Scheduler
	logger *logrus.Logger
}

func NewScheduler(logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{sched: quartz.NewStdScheduler(), logger: logger}
}

// ValidateCron reports whether expr is a valid quartz cron expression.
func ValidateCron(expr string) error {
	if _, err := quartz.NewCronTrigger(expr); err != nil {
		return fmt.Errorf("schedule: invalid cron %q: %w", expr, err)
	}
	return nil
}

// Start schedules b and starts the scheduler. Failed runs are logged; the
// schedule keeps firing.
func (s *Scheduler) Start(ctx context.Context, expr string, b *Briefing) error {
	trigger, err := quartz.NewCronTrigger(expr)
	if err != nil {
		return fmt.Errorf("schedule: invalid cron %q: %w", expr, err)
	}
	briefingJob := job.NewFunctionJob[int](func(ctx context.Context) (int, error) {
		res, err := b.Run(ctx)
		if err != nil {
			s.logger.WithError(err).Error("scheduled briefing failed")
			return 0, err
		}
		return len(res.Digests), nil
	})
	detail := quartz.NewJobDetail(briefingJob, quartz.NewJobKey("briefing"))
	s.sched.Start(ctx)
	if err := s.sched.ScheduleJob(detail, trigger); err != nil {
		s.sched.Stop()
		return fmt.Errorf("schedule: %w", err)
	}
	s.logger.WithField("cron", expr).Info("briefing scheduled")
	return nil
}

// Stop halts the scheduler and waits for running jobs to return.
func (s *Scheduler) Stop(ctx context.Context) {
	s.sched.Stop()
	s.sched.Wait(ctx)
}
