package response

import (
	"time"

	"slotledger/internal/usecase/queries"
)

type SlotResponse struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

type AvailabilityResponse struct {
	ResourceID     string         `json:"resourceId"`
	ServiceID      string         `json:"serviceId"`
	Day            string         `json:"day"`
	AvailableSlots []SlotResponse `json:"availableSlots"`
	ReservedSlots  []SlotResponse `json:"reservedSlots"`
	OwnSlots       []SlotResponse `json:"ownSlots"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		ResourceID:     view.ResourceID.String(),
		ServiceID:      view.ServiceID.String(),
		Day:            view.Day.Format("2006-01-02"),
		AvailableSlots: toSlotResponses(view.AvailableSlots),
		ReservedSlots:  toSlotResponses(view.ReservedSlots),
		OwnSlots:       toSlotResponses(view.OwnSlots),
	}
}

func toSlotResponses(slots []queries.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{
			StartsAt: s.StartsAt.Format(time.RFC3339),
			EndsAt:   s.EndsAt.Format(time.RFC3339),
		}
	}
	return out
}
