package request

import (
	"time"

	"slotledger/internal/domain/booking"

	"github.com/google/uuid"
)

// Subject identity arrives in the request body: who is allowed to act is the
// caller's concern, not this engine's. An omitted end_time sizes the booking
// by the service's duration.
type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	SubjectID  uuid.UUID `json:"subject_id" binding:"required"`
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time"`
}

type CancelBookingRequest struct {
	SubjectID uuid.UUID `json:"subject_id" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateBookingStatusRequest) ToStatus() (booking.Status, bool) {
	s := booking.Status(r.Status)
	return s, s.IsValid()
}
