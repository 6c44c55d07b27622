package commands

import (
	"context"
	"log/slog"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/domain/schedule"
	"slotledger/internal/infra"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReserveParams struct {
	ResourceID uuid.UUID
	SubjectID  uuid.UUID
	ServiceID  uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
}

// BookingCommands is the ledger's write path: the single synchronization
// point for a resource's calendar. Availability reads are advisory; every
// write re-runs conflict detection here.
type BookingCommands interface {
	Reserve(ctx context.Context, p ReserveParams) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID, actingSubjectID uuid.UUID) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, next booking.Status) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	repo     BookingRepository
	active   ActiveBookingReader
	services ServiceReadStore
	reminder ReminderScheduler
	cache    AvailabilityInvalidator
	locks    *resourceLocks
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingCommands(
	repo BookingRepository,
	active ActiveBookingReader,
	services ServiceReadStore,
	reminder ReminderScheduler,
	cache AvailabilityInvalidator,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:     repo,
		active:   active,
		services: services,
		reminder: reminder,
		cache:    cache,
		locks:    newResourceLocks(),
		clock:    clk,
		logger:   logger,
	}
}

// Reserve atomically re-checks conflicts for the resource and inserts a
// pending booking. Concurrent overlapping reserves for the same resource
// produce exactly one winner; the rest fail with ErrBookingConflict. A
// resubmit of an interval the subject already holds for the same service
// fails with ErrDuplicateRequest and writes nothing.
func (c *bookingCommandsImpl) Reserve(ctx context.Context, p ReserveParams) (*queries.BookingView, error) {
	svc, err := c.services.FindByID(ctx, p.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUnknownService
		}
		return nil, c.mapStorageErr(err)
	}

	// An omitted end is sized by the service's duration.
	end := p.EndTime
	if end.IsZero() {
		end = svc.EndFor(p.StartTime)
	}
	interval, err := booking.NewInterval(p.StartTime, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	mu := c.locks.get(p.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	current, err := c.active.FindActiveByResourceAndRange(ctx, p.ResourceID, interval)
	if err != nil {
		return nil, c.mapStorageErr(err)
	}
	if booking.HeldBySubject(p.SubjectID, p.ServiceID, interval, current) {
		return nil, errs.ErrDuplicateRequest
	}
	if booking.HasConflict(p.ResourceID, interval, current) {
		return nil, errs.ErrBookingConflict
	}

	entity := booking.NewBooking(p.ResourceID, p.SubjectID, p.ServiceID, interval)
	persisted, err := c.repo.InsertIfNoConflict(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrBookingConflict)
		}
		return nil, c.mapStorageErr(err)
	}

	view := queries.ViewFromEntity(persisted, c.clock.Now())
	c.afterWrite(ctx, persisted)
	c.scheduleReminder(ctx, persisted)
	return view, nil
}

// Cancel moves the booking to cancelled. Cancelling an already-cancelled
// booking is a no-op success. The acting subject is recorded for audit only;
// the engine does not authorize.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actingSubjectID uuid.UUID) (*queries.BookingView, error) {
	view, err := c.transition(ctx, bookingID, booking.StatusCancelled)
	if err != nil {
		return nil, err
	}
	c.logger.Info("booking cancelled",
		"booking_id", bookingID,
		"acting_subject_id", actingSubjectID,
	)
	return view, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, next booking.Status) (*queries.BookingView, error) {
	if !next.IsValid() {
		return nil, errs.ErrInvalidTransition
	}
	return c.transition(ctx, bookingID, next)
}

func (c *bookingCommandsImpl) transition(ctx context.Context, bookingID uuid.UUID, next booking.Status) (*queries.BookingView, error) {
	current, err := c.repo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, c.mapStorageErr(err)
	}

	if current.Status() == next {
		return queries.ViewFromEntity(current, c.clock.Now()), nil
	}
	if !current.Status().CanTransitionTo(next) {
		return nil, errs.ErrInvalidTransition
	}

	updated, err := c.repo.UpdateStatus(ctx, bookingID, next)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, c.mapStorageErr(err)
	}

	c.afterWrite(ctx, updated)
	return queries.ViewFromEntity(updated, c.clock.Now()), nil
}

// afterWrite invalidates cached availability for every day the interval
// touches; a booking crossing midnight stales both days' views. Best-effort:
// the booking is already durable, so failures here log and move on.
func (c *bookingCommandsImpl) afterWrite(ctx context.Context, b *booking.Booking) {
	if c.cache == nil {
		return
	}
	end := b.Interval().End()
	for day := schedule.StartOfDay(b.Interval().Start()); day.Before(end); day = day.AddDate(0, 0, 1) {
		if err := c.cache.Invalidate(ctx, b.ResourceID(), day); err != nil {
			c.logger.Warn("availability invalidation failed",
				"resource_id", b.ResourceID(),
				"day", day,
				"error", err,
			)
		}
	}
}

// scheduleReminder runs at reservation time only; status transitions must not
// enqueue a second reminder for the same booking. The worker re-reads the
// booking before delivering, so cancellation needs no dequeue.
func (c *bookingCommandsImpl) scheduleReminder(ctx context.Context, b *booking.Booking) {
	if c.reminder == nil {
		return
	}
	if err := c.reminder.ScheduleReminder(ctx, queries.ViewFromEntity(b, c.clock.Now())); err != nil {
		c.logger.Warn("reminder scheduling failed",
			"booking_id", b.ID(),
			"error", err,
		)
	}
}

func (c *bookingCommandsImpl) mapStorageErr(err error) error {
	if infra.IsKind(err, infra.KindUnavailable) {
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return err
}
