package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"slotledger/internal/domain/booking"
	"slotledger/internal/infra/notify"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/queries"

	"github.com/hibiken/asynq"
)

// ReminderHandler delivers booking reminders. It re-reads the booking at
// delivery time: a booking cancelled after the task was enqueued is skipped
// silently.
type ReminderHandler struct {
	bookings queries.BookingQueries
	logger   *slog.Logger
}

func NewReminderHandler(bookings queries.BookingQueries, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{bookings: bookings, logger: logger}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload notify.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	view, err := h.bookings.GetByID(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			return asynq.SkipRetry
		}
		return err
	}

	if !booking.Status(view.Status).IsActive() {
		h.logger.Debug("skipping reminder for inactive booking",
			"booking_id", view.ID,
			"status", view.Status,
		)
		return nil
	}

	// Delivery transport (mail, push) is a collaborator outside this engine;
	// the worker emits the reminder event for it to pick up.
	h.logger.Info("booking reminder due",
		"booking_id", view.ID,
		"resource_id", view.ResourceID,
		"subject_id", view.SubjectID,
		"starts_at", view.StartsAt,
	)
	return nil
}

func Register(mux *asynq.ServeMux, handler *ReminderHandler) {
	mux.Handle(notify.TypeBookingReminder, handler)
}
