//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/domain/schedule"
	"slotledger/internal/domain/service"
	"slotledger/internal/infra"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/queries"
	"slotledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubServiceStore struct {
	services map[uuid.UUID]*service.Service
}

func (s *stubServiceStore) FindByID(_ context.Context, id uuid.UUID) (*service.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, infra.WrapRepoErr("service not found", errs.New("no rows"), infra.KindNotFound)
	}
	return svc, nil
}

type stubBookingReadStore struct {
	active []*booking.Booking
	views  map[uuid.UUID]*queries.BookingView
	calls  int
}

func (s *stubBookingReadStore) FindViewByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	v, ok := s.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
	}
	return v, nil
}

func (s *stubBookingReadStore) FindViewsBySubject(_ context.Context, subjectID uuid.UUID) ([]*queries.BookingView, error) {
	var out []*queries.BookingView
	for _, v := range s.views {
		if v.SubjectID == subjectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubBookingReadStore) FindActiveByResourceAndRange(_ context.Context, resourceID uuid.UUID, rng booking.Interval) ([]*booking.Booking, error) {
	s.calls++
	var out []*booking.Booking
	for _, b := range s.active {
		if b.ResourceID() == resourceID && b.IsActive() && b.Interval().Overlaps(rng) {
			out = append(out, b)
		}
	}
	return out, nil
}

// memoryCache mirrors the redis versioned cache's contract without redis.
type memoryCache struct {
	entries map[string]*queries.AvailabilityView
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*queries.AvailabilityView)}
}

func cacheKey(resourceID, serviceID, subjectID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", resourceID, serviceID, subjectID, day.Format("2006-01-02"))
}

func (c *memoryCache) Get(_ context.Context, resourceID, serviceID, subjectID uuid.UUID, day time.Time) (*queries.AvailabilityView, bool, error) {
	view, ok := c.entries[cacheKey(resourceID, serviceID, subjectID, day)]
	return view, ok, nil
}

func (c *memoryCache) Set(_ context.Context, subjectID uuid.UUID, view *queries.AvailabilityView) error {
	c.sets++
	c.entries[cacheKey(view.ResourceID, view.ServiceID, subjectID, view.Day)] = view
	return nil
}

type availabilityFixture struct {
	q         queries.AvailabilityQueries
	store     *stubBookingReadStore
	cache     *memoryCache
	serviceID uuid.UUID
}

func newAvailabilityFixture(t *testing.T, active ...*booking.Booking) *availabilityFixture {
	t.Helper()

	serviceID := uuid.New()
	svc, err := service.NewService(serviceID, "consultation", 60)
	require.NoError(t, err)

	window, err := schedule.NewWindow(9, 17, 60)
	require.NoError(t, err)

	store := &stubBookingReadStore{active: active}
	cache := newMemoryCache()

	return &availabilityFixture{
		q: queries.NewAvailabilityQueries(
			window,
			&stubServiceStore{services: map[uuid.UUID]*service.Service{serviceID: svc}},
			store,
			cache,
			slog.New(slog.DiscardHandler),
		),
		store:     store,
		cache:     cache,
		serviceID: serviceID,
	}
}

func slotStarts(slots []queries.Slot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.StartsAt
	}
	return out
}

func TestGetDay(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()

	t.Run("empty day is fully available", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, uuid.New(), builder.BaseDay)
		require.NoError(t, err)

		assert.Len(t, view.AvailableSlots, 8)
		assert.Empty(t, view.ReservedSlots)
		assert.Empty(t, view.OwnSlots)
		assert.Equal(t, builder.BaseDay.Add(9*time.Hour), view.AvailableSlots[0].StartsAt)
		assert.Equal(t, builder.BaseDay.Add(17*time.Hour), view.AvailableSlots[7].EndsAt)
	})

	t.Run("slot held by another subject is reserved", func(t *testing.T) {
		f := newAvailabilityFixture(t, builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(10, 11).
			WithStatus(booking.StatusConfirmed).
			MustBuild())

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, uuid.New(), builder.BaseDay)
		require.NoError(t, err)

		require.Len(t, view.ReservedSlots, 1)
		assert.Equal(t, builder.BaseDay.Add(10*time.Hour), view.ReservedSlots[0].StartsAt)
		assert.Empty(t, view.OwnSlots)
		assert.Len(t, view.AvailableSlots, 7)
		assert.NotContains(t, slotStarts(view.AvailableSlots), builder.BaseDay.Add(10*time.Hour))
	})

	t.Run("own slot appears in both reserved and own", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		subjectID := uuid.New()
		f.store.active = []*booking.Booking{builder.NewBookingBuilder().
			WithResource(resourceID).
			WithSubject(subjectID).
			WithService(f.serviceID).
			WithHours(10, 11).
			WithStatus(booking.StatusPending).
			MustBuild()}

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, subjectID, builder.BaseDay)
		require.NoError(t, err)

		require.Len(t, view.OwnSlots, 1)
		require.Len(t, view.ReservedSlots, 1)
		assert.Equal(t, view.OwnSlots[0], view.ReservedSlots[0])
		assert.NotContains(t, slotStarts(view.AvailableSlots), builder.BaseDay.Add(10*time.Hour))
	})

	t.Run("same subject different service still blocks the slot", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		subjectID := uuid.New()
		f.store.active = []*booking.Booking{builder.NewBookingBuilder().
			WithResource(resourceID).
			WithSubject(subjectID).
			WithHours(10, 11).
			WithStatus(booking.StatusConfirmed).
			MustBuild()}

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, subjectID, builder.BaseDay)
		require.NoError(t, err)

		assert.Empty(t, view.OwnSlots)
		require.Len(t, view.ReservedSlots, 1)
		assert.NotContains(t, slotStarts(view.AvailableSlots), builder.BaseDay.Add(10*time.Hour))
	})

	t.Run("booking spanning two slots reserves both", func(t *testing.T) {
		f := newAvailabilityFixture(t, builder.NewBookingBuilder().
			WithResource(resourceID).
			WithTimes(
				builder.BaseDay.Add(10*time.Hour+30*time.Minute),
				builder.BaseDay.Add(11*time.Hour+30*time.Minute),
			).
			WithStatus(booking.StatusConfirmed).
			MustBuild())

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, uuid.New(), builder.BaseDay)
		require.NoError(t, err)

		assert.ElementsMatch(t,
			[]time.Time{builder.BaseDay.Add(10 * time.Hour), builder.BaseDay.Add(11 * time.Hour)},
			slotStarts(view.ReservedSlots),
		)
		assert.Len(t, view.AvailableSlots, 6)
	})

	t.Run("cancelled bookings do not reserve", func(t *testing.T) {
		f := newAvailabilityFixture(t, builder.NewBookingBuilder().
			WithResource(resourceID).
			WithHours(10, 11).
			WithStatus(booking.StatusCancelled).
			MustBuild())

		view, err := f.q.GetDay(ctx, resourceID, f.serviceID, uuid.New(), builder.BaseDay)
		require.NoError(t, err)

		assert.Len(t, view.AvailableSlots, 8)
		assert.Empty(t, view.ReservedSlots)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		_, err := f.q.GetDay(ctx, resourceID, uuid.New(), uuid.New(), builder.BaseDay)
		assert.ErrorIs(t, err, errs.ErrUnknownService)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		subjectID := uuid.New()

		_, err := f.q.GetDay(ctx, resourceID, f.serviceID, subjectID, builder.BaseDay)
		require.NoError(t, err)
		require.Equal(t, 1, f.store.calls)
		require.Equal(t, 1, f.cache.sets)

		_, err = f.q.GetDay(ctx, resourceID, f.serviceID, subjectID, builder.BaseDay)
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.calls, "cache hit must not touch the store")
		assert.Equal(t, 1, f.cache.sets)
	})
}
