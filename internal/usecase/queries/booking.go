package queries

import (
	"context"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/domain/schedule"
	"slotledger/internal/infra"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read model (DTO for read side)
type BookingView struct {
	ID            uuid.UUID `json:"id"`
	ResourceID    uuid.UUID `json:"resource_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"display_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookingReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindViewsBySubject(ctx context.Context, subjectID uuid.UUID) ([]*BookingView, error)
	FindActiveByResourceAndRange(ctx context.Context, resourceID uuid.UUID, rng booking.Interval) ([]*booking.Booking, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListActive(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]*BookingView, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, mapStorageErr(err)
	}
	decorateDisplayStatus(view, q.clock.Now())
	return view, nil
}

func (q *bookingQueriesImpl) ListActive(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]*BookingView, error) {
	entities, err := q.store.FindActiveByResourceAndRange(ctx, resourceID, schedule.DayRange(day))
	if err != nil {
		return nil, mapStorageErr(err)
	}
	now := q.clock.Now()
	views := make([]*BookingView, len(entities))
	for i, b := range entities {
		views[i] = ViewFromEntity(b, now)
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.FindViewsBySubject(ctx, subjectID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	now := q.clock.Now()
	for _, v := range views {
		decorateDisplayStatus(v, now)
	}
	return views, nil
}

func ViewFromEntity(b *booking.Booking, now time.Time) *BookingView {
	view := &BookingView{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		SubjectID:  b.SubjectID(),
		ServiceID:  b.ServiceID(),
		StartsAt:   b.Interval().Start(),
		EndsAt:     b.Interval().End(),
		Status:     b.Status().String(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
	decorateDisplayStatus(view, now)
	return view
}

// DisplayStatus projects a wall-clock status for display. Cancelled is
// sticky; otherwise a booking past its end reads completed, one in progress
// reads confirmed, and a future one reads pending. Recomputed on every read,
// never persisted.
func DisplayStatus(stored booking.Status, iv booking.Interval, now time.Time) booking.Status {
	if stored == booking.StatusCancelled {
		return booking.StatusCancelled
	}
	switch {
	case !iv.End().After(now):
		return booking.StatusCompleted
	case iv.Contains(now):
		return booking.StatusConfirmed
	default:
		return booking.StatusPending
	}
}

func decorateDisplayStatus(view *BookingView, now time.Time) {
	iv, err := booking.NewInterval(view.StartsAt, view.EndsAt)
	if err != nil {
		view.DisplayStatus = view.Status
		return
	}
	view.DisplayStatus = DisplayStatus(booking.Status(view.Status), iv, now).String()
}

func mapStorageErr(err error) error {
	if infra.IsKind(err, infra.KindUnavailable) {
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return err
}
