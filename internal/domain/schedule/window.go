package schedule

import (
	"iter"
	"time"

	"slotledger/internal/domain/booking"
	"slotledger/internal/pkg/errs"
)

var ErrInvalidWindow = errs.New("slot step must be positive")

const (
	DefaultOpenHour    = 9
	DefaultCloseHour   = 17
	DefaultStepMinutes = 60
)

// Window is a business operating window with a fixed slot granularity.
// Slot width is StepMinutes regardless of service duration; services longer
// than one step still occupy a single generated bucket. Slot width is
// configuration, not inferred from the service catalog.
type Window struct {
	openHour    int
	closeHour   int
	stepMinutes int
}

func NewWindow(openHour, closeHour, stepMinutes int) (Window, error) {
	if stepMinutes <= 0 {
		return Window{}, ErrInvalidWindow
	}
	return Window{
		openHour:    openHour,
		closeHour:   closeHour,
		stepMinutes: stepMinutes,
	}, nil
}

func DefaultWindow() Window {
	return Window{
		openHour:    DefaultOpenHour,
		closeHour:   DefaultCloseHour,
		stepMinutes: DefaultStepMinutes,
	}
}

func (w Window) OpenHour() int    { return w.openHour }
func (w Window) CloseHour() int   { return w.closeHour }
func (w Window) StepMinutes() int { return w.stepMinutes }

// Slots yields the candidate intervals for day in ascending order, one per
// step, each fully inside the operating window. A window whose close hour is
// not after its open hour yields nothing. The sequence is restartable: each
// range over it regenerates from the opening slot.
func (w Window) Slots(day time.Time) iter.Seq[booking.Interval] {
	return func(yield func(booking.Interval) bool) {
		base := StartOfDay(day)
		step := time.Duration(w.stepMinutes) * time.Minute
		closeMin := w.closeHour * 60
		for m := w.openHour * 60; m+w.stepMinutes <= closeMin; m += w.stepMinutes {
			start := base.Add(time.Duration(m) * time.Minute)
			iv, err := booking.NewInterval(start, start.Add(step))
			if err != nil {
				return
			}
			if !yield(iv) {
				return
			}
		}
	}
}

// DayRange is the half-open interval covering the whole calendar day, used
// when fetching a day's active bookings.
func DayRange(day time.Time) booking.Interval {
	start := StartOfDay(day)
	return booking.MustInterval(start, start.AddDate(0, 0, 1))
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
