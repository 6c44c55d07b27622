package commands

import (
	"context"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/domain/service"
	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the ledger's persistence mirror.
// InsertIfNoConflict must refuse a row overlapping an active booking for the
// same resource even if the application-level check raced; the Postgres
// range-exclusion constraint provides that backstop.
type BookingRepository interface {
	InsertIfNoConflict(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) (*booking.Booking, error)
}

type ActiveBookingReader interface {
	FindActiveByResourceAndRange(ctx context.Context, resourceID uuid.UUID, rng booking.Interval) ([]*booking.Booking, error)
}

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*service.Service, error)
}

type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, view *queries.BookingView) error
}

type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, resourceID uuid.UUID, day time.Time) error
}
