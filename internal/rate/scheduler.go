package rate

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// syncHour is when the daily cycle fires, local time. The source
// publishes the new day's rates during the night, so 03:00 leaves a
// comfortable margin past midnight.
const syncHour = 3

type Scheduler struct {
	updater *Updater
	// -----
	sched gocron.Scheduler
}

// Start runs one sync cycle immediately and then once per day at
// syncHour. Cycles handle their own failures, so the scheduler keeps
// running regardless of how individual runs go.
func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		s.updater.SyncOnce(jobCtx, execID)
		logrus.Infof("Sync cycle %s finished, next one in ~%s", execID, NextRunIn(time.Now()).Round(time.Second))
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(syncHour, 0, 0))),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

// NextRunIn returns the time remaining until the next day boundary plus
// syncHour hours. Kept as a pure function of the current time so the
// schedule arithmetic is testable on its own.
func NextRunIn(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1).
		Add(syncHour * time.Hour)
	return next.Sub(now)
}

func NewScheduler(updater *Updater) *Scheduler {
	return &Scheduler{updater: updater}
}
