package api

import (
	"errors"
	"net/http"
	"time"

	resdto "slotledger/internal/handler/dto/response"
	"slotledger/internal/handler/httperr"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Day availability
// @Description Partition a day's slots into available, reserved and own
// @Tags availability
// @Produce json
// @Param resource_id query string true "Resource ID"
// @Param service_id query string true "Service ID"
// @Param subject_id query string true "Subject ID"
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Query("resource_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing resource_id"})
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing service_id"})
		return
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing subject_id"})
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	view, err := h.availability.GetDay(c.Request.Context(), resourceID, serviceID, subjectID, day)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnknownService):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown service"})
		case errors.Is(err, errs.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable, retry later"})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
