package booking

import (
	"time"

	"slotledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errs.New("invalid booking status")
	ErrInvalidTransition = errs.New("invalid booking status transition")
)

// Booking is a subject's claim on a resource's time. Only bookings whose
// status is active participate in conflict detection.
type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	subjectID  uuid.UUID
	serviceID  uuid.UUID
	interval   Interval
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking creates a pending booking. Timestamps are assigned by the
// persistence layer on insert.
func NewBooking(resourceID, subjectID, serviceID uuid.UUID, interval Interval) *Booking {
	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		subjectID:  subjectID,
		serviceID:  serviceID,
		interval:   interval,
		status:     StatusPending,
	}
}

func ReconstructBooking(
	id, resourceID, subjectID, serviceID uuid.UUID,
	interval Interval,
	status Status,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:         id,
		resourceID: resourceID,
		subjectID:  subjectID,
		serviceID:  serviceID,
		interval:   interval,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// Transition moves the booking to next, enforcing the status machine.
// Re-applying the current terminal status is treated as a no-op so that a
// second cancel of the same booking succeeds idempotently.
func (b *Booking) Transition(next Status) error {
	if b.status == next {
		return nil
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) SubjectID() uuid.UUID  { return b.subjectID }
func (b *Booking) ServiceID() uuid.UUID  { return b.serviceID }
func (b *Booking) Interval() Interval    { return b.interval }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
