package response

import (
	"time"

	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	ResourceID    uuid.UUID `json:"resourceId"`
	SubjectID     uuid.UUID `json:"subjectId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"displayStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:            rm.ID,
		ResourceID:    rm.ResourceID,
		SubjectID:     rm.SubjectID,
		ServiceID:     rm.ServiceID,
		StartsAt:      rm.StartsAt,
		EndsAt:        rm.EndsAt,
		Status:        rm.Status,
		DisplayStatus: rm.DisplayStatus,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromBookingViews(rms []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromBookingView(rm)
	}
	return out
}
