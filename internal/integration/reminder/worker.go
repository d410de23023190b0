// Package reminder runs the scheduled job that warns users about upcoming
// subscription renewals over Telegram.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/spaarbot/backend/internal/application/adapter"
)

// DefaultSchedule runs the renewal check every morning at 09:00 UTC.
const DefaultSchedule = "0 9 * * *"

// DefaultWindowDays is how many days ahead of a renewal the reminder fires.
const DefaultWindowDays = 3

// Worker periodically scans for subscriptions about to renew and notifies
// their owners. After a reminder is sent the subscription's renewal date is
// advanced one billing period, so each cycle produces exactly one reminder.
type Worker struct {
	subscriptionRepo adapter.SubscriptionRepository
	userRepo         adapter.UserRepository
	notifier         adapter.TelegramNotifier
	schedule         string
	windowDays       int
	cron             *cron.Cron
}

// NewWorker creates a new reminder worker instance.
func NewWorker(
	subscriptionRepo adapter.SubscriptionRepository,
	userRepo adapter.UserRepository,
	notifier adapter.TelegramNotifier,
	schedule string,
	windowDays int,
) *Worker {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Worker{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		schedule:         schedule,
		windowDays:       windowDays,
		cron:             cron.New(),
	}
}

// Start registers the job and starts the scheduler.
func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		w.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule renewal reminders: %w", err)
	}

	w.cron.Start()
	slog.Info("renewal reminder worker started",
		"schedule", w.schedule,
		"window_days", w.windowDays,
	)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	slog.Info("renewal reminder worker stopped")
}

// Run performs a single reminder sweep. Exposed so a run can be triggered
// outside the schedule.
func (w *Worker) Run(ctx context.Context) {
	cutoff := time.Now().UTC().AddDate(0, 0, w.windowDays)

	due, err := w.subscriptionRepo.FindDueBefore(ctx, cutoff)
	if err != nil {
		slog.Error("failed to load due subscriptions", "error", err)
		return
	}

	for _, sub := range due {
		user, err := w.userRepo.FindByID(ctx, sub.UserID)
		if err != nil {
			slog.Warn("skipping renewal reminder, owner not found",
				"subscription_id", sub.ID,
				"error", err,
			)
			continue
		}

		text := fmt.Sprintf(
			"%s renews on %s for €%s.",
			sub.Name,
			sub.NextRenewal.Format("02-01-2006"),
			sub.Amount.StringFixed(2),
		)

		if err := w.notifier.SendMessage(ctx, user.TelegramID, text); err != nil {
			slog.Warn("failed to send renewal reminder",
				"subscription_id", sub.ID,
				"error", err,
			)
			continue
		}

		// Only advance after a delivered reminder; a failed send retries
		// on the next sweep.
		sub.Advance()
		if err := w.subscriptionRepo.Update(ctx, sub); err != nil {
			slog.Error("failed to advance subscription renewal",
				"subscription_id", sub.ID,
				"error", err,
			)
			continue
		}

		slog.Info("renewal reminder sent",
			"subscription_id", sub.ID,
			"next_renewal", sub.NextRenewal,
		)
	}
}
