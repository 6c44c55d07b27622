package readstore

import (
	"context"
	"errors"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/infra"
	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

const findBookingViewByIDSQL = `
SELECT id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.pool.QueryRow(ctx, findBookingViewByIDSQL, id)

	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err, infra.ClassifyPgErr(err))
	}
	return view, nil
}

const findBookingViewsBySubjectSQL = `
SELECT id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at
FROM bookings
WHERE subject_id = $1
ORDER BY starts_at DESC`

func (r *BookingReadStore) FindViewsBySubject(ctx context.Context, subjectID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.pool.Query(ctx, findBookingViewsBySubjectSQL, subjectID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by subject", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err, infra.ClassifyPgErr(err))
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err, infra.ClassifyPgErr(err))
	}
	return views, nil
}

// Overlap predicate in SQL mirrors booking.Interval.Overlaps: half-open
// ranges intersect iff each starts before the other ends.
const findActiveByResourceAndRangeSQL = `
SELECT id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at
FROM bookings
WHERE resource_id = $1
  AND status IN ('pending', 'confirmed')
  AND starts_at < $3
  AND ends_at > $2
ORDER BY starts_at`

func (r *BookingReadStore) FindActiveByResourceAndRange(
	ctx context.Context,
	resourceID uuid.UUID,
	rng booking.Interval,
) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, findActiveByResourceAndRangeSQL, resourceID, rng.Start(), rng.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBookingEntity(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err, infra.ClassifyPgErr(err))
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err, infra.ClassifyPgErr(err))
	}
	return bookings, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	if err := row.Scan(
		&view.ID,
		&view.ResourceID,
		&view.SubjectID,
		&view.ServiceID,
		&view.StartsAt,
		&view.EndsAt,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &view, nil
}

func scanBookingEntity(row pgx.Row) (*booking.Booking, error) {
	var (
		id, resourceID, subjectID, serviceID uuid.UUID
		startsAt, endsAt                     time.Time
		status                               string
		createdAt, updatedAt                 time.Time
	)
	if err := row.Scan(&id, &resourceID, &subjectID, &serviceID, &startsAt, &endsAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	interval, err := booking.NewInterval(startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(id, resourceID, subjectID, serviceID, interval, booking.Status(status), createdAt, updatedAt)
}
