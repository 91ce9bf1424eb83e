package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ResetJob clears the roster's attendance fields and every stored session
// once a day, on the configured schedule in the configured timezone.
type ResetJob struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewResetJob schedules attendance.ResetDay with a standard five-field cron spec.
func NewResetJob(spec string, loc *time.Location, svc AttendanceService, logger *zap.Logger) (*ResetJob, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := svc.ResetDay(ctx); err != nil {
			logger.Error("scheduled daily reset failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	return &ResetJob{cron: c, logger: logger}, nil
}

// Start runs the scheduler in its own goroutine.
func (j *ResetJob) Start() {
	j.cron.Start()
	j.logger.Info("daily reset scheduled", zap.Int("entries", len(j.cron.Entries())))
}

// Stop halts the scheduler; the returned context is done once a running reset finishes.
func (j *ResetJob) Stop() context.Context {
	return j.cron.Stop()
}
