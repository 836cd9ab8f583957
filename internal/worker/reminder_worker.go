package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/service"
)

// ReminderWorker polls for due reminders and dispatches them. It runs
// until its context is cancelled.
type ReminderWorker struct {
	reminders *service.ReminderService
	logger    *zap.Logger
	interval  time.Duration
}

// NewReminderWorker constructs the worker.
func NewReminderWorker(cfg config.Config, reminders *service.ReminderService, logger *zap.Logger) *ReminderWorker {
	return &ReminderWorker{
		reminders: reminders,
		logger:    logger,
		interval:  cfg.Reminder.PollInterval(),
	}
}

// Run blocks, dispatching due reminders on each tick.
func (w *ReminderWorker) Run(ctx context.Context) {
	w.logger.Info("reminder worker started", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context) {
	dispatched, err := w.reminders.DispatchDue(ctx)
	if err != nil {
		w.logger.Error("reminder dispatch failed", zap.Error(err))
		return
	}
	if dispatched > 0 {
		w.logger.Info("dispatched reminders", zap.Int("count", dispatched))
	}
}
