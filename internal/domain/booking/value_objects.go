package booking

import (
	"fmt"
	"time"

	"slotledger/internal/pkg/errs"
)

var ErrInvalidInterval = errs.New("interval end must be after start")

// Interval is a half-open time range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

// MustInterval panics on an invalid range. Test and fixture use only.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// Overlaps reports whether the two half-open ranges intersect.
// Touching intervals (a.end == b.start) do not overlap, so back-to-back
// bookings are legal.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

func (iv Interval) Contains(instant time.Time) bool {
	return !instant.Before(iv.start) && instant.Before(iv.end)
}

// ToTstzrange renders the interval as a Postgres tstzrange literal.
func (iv Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
