//go:build unit

package booking_test

import (
	"testing"

	"slotledger/internal/domain/booking"
	"slotledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasConflict(t *testing.T) {
	resourceID := uuid.New()
	existing := builder.NewBookingBuilder().
		WithResource(resourceID).
		WithHours(10, 11).
		MustBuild()
	bookings := []*booking.Booking{existing}

	t.Run("overlapping candidate conflicts", func(t *testing.T) {
		candidate := booking.MustInterval(at(10, 30), at(11, 30))
		assert.True(t, booking.HasConflict(resourceID, candidate, bookings))
	})

	t.Run("back to back candidate does not conflict", func(t *testing.T) {
		candidate := booking.MustInterval(at(11, 0), at(12, 0))
		assert.False(t, booking.HasConflict(resourceID, candidate, bookings))
	})

	t.Run("other resource is ignored", func(t *testing.T) {
		candidate := booking.MustInterval(at(10, 0), at(11, 0))
		assert.False(t, booking.HasConflict(uuid.New(), candidate, bookings))
	})

	t.Run("cancelled booking never blocks", func(t *testing.T) {
		cancelled := builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(10, 11).
			WithStatus(booking.StatusCancelled).
			MustBuild()
		candidate := booking.MustInterval(at(10, 0), at(11, 0))
		assert.False(t, booking.HasConflict(resourceID, candidate, []*booking.Booking{cancelled}))
	})

	t.Run("completed booking never blocks", func(t *testing.T) {
		completed := builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(10, 11).
			WithStatus(booking.StatusCompleted).
			MustBuild()
		candidate := booking.MustInterval(at(10, 0), at(11, 0))
		assert.False(t, booking.HasConflict(resourceID, candidate, []*booking.Booking{completed}))
	})
}

func TestHeldBySubject(t *testing.T) {
	subjectID := uuid.New()
	serviceID := uuid.New()
	held := builder.NewBookingBuilder().
		WithSubject(subjectID).
		WithService(serviceID).
		WithHours(10, 11).
		MustBuild()
	bookings := []*booking.Booking{held}
	candidate := booking.MustInterval(at(10, 0), at(11, 0))

	t.Run("same subject and service overlapping", func(t *testing.T) {
		assert.True(t, booking.HeldBySubject(subjectID, serviceID, candidate, bookings))
	})

	t.Run("different subject", func(t *testing.T) {
		assert.False(t, booking.HeldBySubject(uuid.New(), serviceID, candidate, bookings))
	})

	t.Run("different service", func(t *testing.T) {
		assert.False(t, booking.HeldBySubject(subjectID, uuid.New(), candidate, bookings))
	})

	t.Run("non-overlapping candidate", func(t *testing.T) {
		later := booking.MustInterval(at(14, 0), at(15, 0))
		assert.False(t, booking.HeldBySubject(subjectID, serviceID, later, bookings))
	})

	t.Run("cancelled holding is not a hold", func(t *testing.T) {
		cancelled := builder.NewBookingBuilder().
			WithSubject(subjectID).
			WithService(serviceID).
			WithHours(10, 11).
			WithStatus(booking.StatusCancelled).
			MustBuild()
		assert.False(t, booking.HeldBySubject(subjectID, serviceID, candidate, []*booking.Booking{cancelled}))
	})
}
