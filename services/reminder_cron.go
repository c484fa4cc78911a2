package services

import (
	"context"
	"time"

	"github.com/estatehub-api/utils"
	"github.com/robfig/cron/v3"
)

// ReminderCron runs reminder dispatch in-process on a cron schedule, for
// deployments without an external trigger
type ReminderCron struct {
	cron    *cron.Cron
	service *ReminderService
	budget  time.Duration
}

// NewReminderCron registers a dispatch job on spec. Each run is bounded by
// budget and overlapping runs are skipped.
func NewReminderCron(service *ReminderService, spec string, budget time.Duration) (*ReminderCron, error) {
	logger := cron.PrintfLogger(utils.Logger)
	rc := &ReminderCron{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		service: service,
		budget:  budget,
	}
	if _, err := rc.cron.AddFunc(spec, rc.run); err != nil {
		return nil, err
	}
	return rc, nil
}

// Start begins scheduling in the background
func (rc *ReminderCron) Start() {
	rc.cron.Start()
}

// Stop halts scheduling and returns a context done once the running job ends
func (rc *ReminderCron) Stop() context.Context {
	return rc.cron.Stop()
}

func (rc *ReminderCron) run() {
	ctx, cancel := context.WithTimeout(context.Background(), rc.budget)
	defer cancel()

	if _, err := rc.service.DispatchDue(ctx, time.Now()); err != nil {
		utils.Logger.WithError(err).Error("Scheduled reminder dispatch failed")
	}
}
