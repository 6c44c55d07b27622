package builder

import (
	"time"

	"slotledger/internal/domain/booking"

	"github.com/google/uuid"
)

// BaseDay is the calendar day all builder fixtures land on unless changed.
var BaseDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	id         uuid.UUID
	resourceID uuid.UUID
	subjectID  uuid.UUID
	serviceID  uuid.UUID
	start      time.Time
	end        time.Time
	status     booking.Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := BaseDay.Add(10 * time.Hour)
	return &BookingBuilder{
		id:         uuid.New(),
		resourceID: uuid.New(),
		subjectID:  uuid.New(),
		serviceID:  uuid.New(),
		start:      start,
		end:        start.Add(time.Hour),
		status:     booking.StatusConfirmed,
		createdAt:  BaseDay,
		updatedAt:  BaseDay,
	}
}

func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.id = id
	return b
}

func (b *BookingBuilder) WithResource(id uuid.UUID) *BookingBuilder {
	b.resourceID = id
	return b
}

func (b *BookingBuilder) WithSubject(id uuid.UUID) *BookingBuilder {
	b.subjectID = id
	return b
}

func (b *BookingBuilder) WithService(id uuid.UUID) *BookingBuilder {
	b.serviceID = id
	return b
}

func (b *BookingBuilder) WithTimes(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

// WithHours places the booking at [startHour, endHour) on BaseDay.
func (b *BookingBuilder) WithHours(startHour, endHour int) *BookingBuilder {
	b.start = BaseDay.Add(time.Duration(startHour) * time.Hour)
	b.end = BaseDay.Add(time.Duration(endHour) * time.Hour)
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.status = status
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	interval, err := booking.NewInterval(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		b.id, b.resourceID, b.subjectID, b.serviceID,
		interval, b.status, b.createdAt, b.updatedAt,
	)
}

// MustBuild panics on invalid fixture data; test setup convenience.
func (b *BookingBuilder) MustBuild() *booking.Booking {
	entity, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return entity
}
