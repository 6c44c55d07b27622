package queries

import (
	"context"
	"log/slog"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/domain/schedule"
	"slotledger/internal/domain/service"
	"slotledger/internal/infra"
	"slotledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type Slot struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// AvailabilityView partitions a day's candidate slots. A slot held by the
// requesting subject for the same service appears in both ReservedSlots and
// OwnSlots: it is unavailable for a new booking either way, but the caller
// can tell "already yours" from "taken by someone else".
type AvailabilityView struct {
	ResourceID     uuid.UUID `json:"resource_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	Day            time.Time `json:"day"`
	AvailableSlots []Slot    `json:"available_slots"`
	ReservedSlots  []Slot    `json:"reserved_slots"`
	OwnSlots       []Slot    `json:"own_slots"`
}

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*service.Service, error)
}

// AvailabilityCache is a read-through cache over computed day views. Cache
// failures are advisory: a miss or an error falls back to recomputation.
type AvailabilityCache interface {
	Get(ctx context.Context, resourceID, serviceID, subjectID uuid.UUID, day time.Time) (*AvailabilityView, bool, error)
	Set(ctx context.Context, subjectID uuid.UUID, view *AvailabilityView) error
}

type AvailabilityQueries interface {
	GetDay(ctx context.Context, resourceID, serviceID, subjectID uuid.UUID, day time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	window   schedule.Window
	services ServiceReadStore
	bookings BookingReadStore
	cache    AvailabilityCache
	logger   *slog.Logger
}

func NewAvailabilityQueries(
	window schedule.Window,
	services ServiceReadStore,
	bookings BookingReadStore,
	cache AvailabilityCache,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		window:   window,
		services: services,
		bookings: bookings,
		cache:    cache,
		logger:   logger,
	}
}

// GetDay generates the day's candidate slots and partitions them against the
// resource's active bookings. The result is a snapshot: it may be stale by
// the time a reservation is submitted, which is why the ledger re-checks at
// write time.
func (q *availabilityQueriesImpl) GetDay(
	ctx context.Context,
	resourceID, serviceID, subjectID uuid.UUID,
	day time.Time,
) (*AvailabilityView, error) {
	if _, err := q.services.FindByID(ctx, serviceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUnknownService
		}
		return nil, mapStorageErr(err)
	}

	if q.cache != nil {
		if view, ok, err := q.cache.Get(ctx, resourceID, serviceID, subjectID, day); err != nil {
			q.logger.Warn("availability cache read failed", "error", err)
		} else if ok {
			return view, nil
		}
	}

	active, err := q.bookings.FindActiveByResourceAndRange(ctx, resourceID, schedule.DayRange(day))
	if err != nil {
		return nil, mapStorageErr(err)
	}

	view := q.partition(resourceID, serviceID, subjectID, day, active)

	if q.cache != nil {
		if err := q.cache.Set(ctx, subjectID, view); err != nil {
			q.logger.Warn("availability cache write failed", "error", err)
		}
	}
	return view, nil
}

func (q *availabilityQueriesImpl) partition(
	resourceID, serviceID, subjectID uuid.UUID,
	day time.Time,
	active []*booking.Booking,
) *AvailabilityView {
	view := &AvailabilityView{
		ResourceID:     resourceID,
		ServiceID:      serviceID,
		Day:            schedule.StartOfDay(day),
		AvailableSlots: []Slot{},
		ReservedSlots:  []Slot{},
		OwnSlots:       []Slot{},
	}

	for iv := range q.window.Slots(day) {
		slot := Slot{StartsAt: iv.Start(), EndsAt: iv.End()}
		switch {
		case booking.HeldBySubject(subjectID, serviceID, iv, active):
			view.OwnSlots = append(view.OwnSlots, slot)
			view.ReservedSlots = append(view.ReservedSlots, slot)
		case booking.HasConflict(resourceID, iv, active):
			view.ReservedSlots = append(view.ReservedSlots, slot)
		default:
			view.AvailableSlots = append(view.AvailableSlots, slot)
		}
	}
	return view
}
