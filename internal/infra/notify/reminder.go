package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/config"
	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

type ReminderPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// ReminderScheduler enqueues a reminder task due ahead of the booking start.
// The worker re-reads the booking before delivering, so a later cancellation
// needs no dequeue here.
type ReminderScheduler struct {
	client *asynq.Client
	cfg    config.ReminderConfig
	clock  clock.Clock
	logger *slog.Logger
}

func NewReminderScheduler(client *asynq.Client, cfg config.ReminderConfig, clk clock.Clock, logger *slog.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		client: client,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, view *queries.BookingView) error {
	runAt := view.StartsAt.Add(-s.cfg.LeadTime)
	now := s.clock.Now()
	if !runAt.After(now) {
		if !view.StartsAt.After(now) {
			// Booking already started; nothing to remind about.
			return nil
		}
		runAt = now
	}

	payload, err := json.Marshal(ReminderPayload{BookingID: view.ID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeBookingReminder, payload)
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(runAt),
		asynq.Queue(s.cfg.Queue),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	s.logger.Info("reminder scheduled",
		"booking_id", view.ID,
		"task_id", info.ID,
		"run_at", runAt,
	)
	return nil
}
