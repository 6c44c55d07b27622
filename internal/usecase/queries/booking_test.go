//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/queries"
	"slotledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayStatus(t *testing.T) {
	iv := booking.MustInterval(
		builder.BaseDay.Add(10*time.Hour),
		builder.BaseDay.Add(11*time.Hour),
	)

	tests := []struct {
		name   string
		stored booking.Status
		now    time.Time
		want   booking.Status
	}{
		{"future booking reads pending", booking.StatusConfirmed, builder.BaseDay.Add(8 * time.Hour), booking.StatusPending},
		{"in-progress booking reads confirmed", booking.StatusPending, builder.BaseDay.Add(10*time.Hour + 30*time.Minute), booking.StatusConfirmed},
		{"start instant is in progress", booking.StatusPending, builder.BaseDay.Add(10 * time.Hour), booking.StatusConfirmed},
		{"past booking reads completed", booking.StatusConfirmed, builder.BaseDay.Add(12 * time.Hour), booking.StatusCompleted},
		{"end instant is completed", booking.StatusConfirmed, builder.BaseDay.Add(11 * time.Hour), booking.StatusCompleted},
		{"cancelled is sticky in the past", booking.StatusCancelled, builder.BaseDay.Add(12 * time.Hour), booking.StatusCancelled},
		{"cancelled is sticky in the future", booking.StatusCancelled, builder.BaseDay.Add(8 * time.Hour), booking.StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queries.DisplayStatus(tt.stored, iv, tt.now))
		})
	}
}

func TestBookingQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id decorates display status", func(t *testing.T) {
		entity := builder.NewBookingBuilder().
			WithHours(10, 11).
			WithStatus(booking.StatusConfirmed).
			MustBuild()
		view := queries.ViewFromEntity(entity, builder.BaseDay)

		store := &stubBookingReadStore{views: map[uuid.UUID]*queries.BookingView{entity.ID(): view}}
		clk := clock.NewMockClock(builder.BaseDay.Add(12 * time.Hour))
		q := queries.NewBookingQueries(store, clk)

		got, err := q.GetByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed.String(), got.Status)
		assert.Equal(t, booking.StatusCompleted.String(), got.DisplayStatus)

		clk.Set(builder.BaseDay.Add(9 * time.Hour))
		got, err = q.GetByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending.String(), got.DisplayStatus)
	})

	t.Run("get by id unknown booking", func(t *testing.T) {
		store := &stubBookingReadStore{views: map[uuid.UUID]*queries.BookingView{}}
		q := queries.NewBookingQueries(store, clock.NewMockClock(builder.BaseDay))

		_, err := q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("list active filters to the day and resource", func(t *testing.T) {
		resourceID := uuid.New()
		inDay := builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(10, 11).
			WithStatus(booking.StatusPending).
			MustBuild()
		otherDay := builder.NewBookingBuilder().
			WithResource(resourceID).
			WithTimes(builder.BaseDay.AddDate(0, 0, 1).Add(10*time.Hour), builder.BaseDay.AddDate(0, 0, 1).Add(11*time.Hour)).
			WithStatus(booking.StatusPending).
			MustBuild()
		cancelled := builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(13, 14).
			WithStatus(booking.StatusCancelled).
			MustBuild()

		store := &stubBookingReadStore{active: []*booking.Booking{inDay, otherDay, cancelled}}
		q := queries.NewBookingQueries(store, clock.NewMockClock(builder.BaseDay.Add(8*time.Hour)))

		views, err := q.ListActive(ctx, resourceID, builder.BaseDay)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, inDay.ID(), views[0].ID)
		assert.Equal(t, booking.StatusPending.String(), views[0].DisplayStatus)
	})

	t.Run("list by subject", func(t *testing.T) {
		subjectID := uuid.New()
		mine := builder.NewBookingBuilder().WithSubject(subjectID).WithHours(10, 11).MustBuild()
		theirs := builder.NewBookingBuilder().WithHours(13, 14).MustBuild()

		store := &stubBookingReadStore{views: map[uuid.UUID]*queries.BookingView{
			mine.ID():   queries.ViewFromEntity(mine, builder.BaseDay),
			theirs.ID(): queries.ViewFromEntity(theirs, builder.BaseDay),
		}}
		q := queries.NewBookingQueries(store, clock.NewMockClock(builder.BaseDay.Add(12*time.Hour)))

		views, err := q.ListBySubject(ctx, subjectID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, mine.ID(), views[0].ID)
		assert.Equal(t, booking.StatusCompleted.String(), views[0].DisplayStatus)
	})
}
