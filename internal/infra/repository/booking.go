package repository

import (
	"context"
	"errors"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the write side of the booking mirror. The bookings
// table carries a range-exclusion constraint over active rows, so an insert
// that races past the application-level check still fails with CONFLICT
// instead of committing a double booking.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const insertBookingSQL = `
INSERT INTO bookings (id, resource_id, subject_id, service_id, starts_at, ends_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at`

func (r *BookingRepository) InsertIfNoConflict(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, insertBookingSQL,
		b.ID(),
		b.ResourceID(),
		b.SubjectID(),
		b.ServiceID(),
		b.Interval().Start(),
		b.Interval().End(),
		b.Status().String(),
	)

	persisted, err := scanBooking(row)
	if err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindConflict {
			return nil, infra.WrapRepoErr("booking overlaps an active booking", err, kind)
		}
		return nil, infra.WrapRepoErr("failed to insert booking", err, kind)
	}
	return persisted, nil
}

const findBookingByIDSQL = `
SELECT id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, findBookingByIDSQL, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err, infra.ClassifyPgErr(err))
	}
	return b, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, resource_id, subject_id, service_id, starts_at, ends_at, status, created_at, updated_at`

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, updateBookingStatusSQL, id, status.String())

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update booking status", err, infra.ClassifyPgErr(err))
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
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
