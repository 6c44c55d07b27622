//go:build unit

package booking_test

import (
	"testing"
	"time"

	"slotledger/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestNewInterval(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		iv, err := booking.NewInterval(at(10, 0), at(11, 0))
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), iv.Start())
		assert.Equal(t, at(11, 0), iv.End())
		assert.Equal(t, time.Hour, iv.Duration())
	})

	t.Run("end equal to start", func(t *testing.T) {
		_, err := booking.NewInterval(at(10, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := booking.NewInterval(at(11, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     booking.Interval
		expected bool
	}{
		{
			name:     "identical intervals",
			a:        booking.MustInterval(at(10, 0), at(11, 0)),
			b:        booking.MustInterval(at(10, 0), at(11, 0)),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        booking.MustInterval(at(10, 0), at(11, 0)),
			b:        booking.MustInterval(at(10, 30), at(11, 30)),
			expected: true,
		},
		{
			name:     "containment",
			a:        booking.MustInterval(at(9, 0), at(12, 0)),
			b:        booking.MustInterval(at(10, 0), at(11, 0)),
			expected: true,
		},
		{
			name:     "touching back to back",
			a:        booking.MustInterval(at(10, 0), at(11, 0)),
			b:        booking.MustInterval(at(11, 0), at(12, 0)),
			expected: false,
		},
		{
			name:     "disjoint",
			a:        booking.MustInterval(at(9, 0), at(10, 0)),
			b:        booking.MustInterval(at(14, 0), at(15, 0)),
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			// Overlap is symmetric
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := booking.MustInterval(at(10, 0), at(11, 0))

	assert.True(t, iv.Contains(at(10, 0)), "start instant is included")
	assert.True(t, iv.Contains(at(10, 30)))
	assert.False(t, iv.Contains(at(11, 0)), "end instant is excluded")
	assert.False(t, iv.Contains(at(9, 59)))
}

func TestIntervalToTstzrange(t *testing.T) {
	iv := booking.MustInterval(at(10, 0), at(11, 0))
	assert.Equal(t, "[2025-06-02T10:00:00Z,2025-06-02T11:00:00Z)", iv.ToTstzrange())
}
