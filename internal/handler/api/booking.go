package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "slotledger/internal/handler/dto/request"
	resdto "slotledger/internal/handler/dto/response"
	"slotledger/internal/handler/httperr"
	"slotledger/internal/pkg/errs"
	"slotledger/internal/usecase/commands"
	"slotledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a time slot for a resource
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.ReserveParams{
		ResourceID: req.ResourceID,
		SubjectID:  req.SubjectID,
		ServiceID:  req.ServiceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	view, err := h.bookingCommands.Reserve(c.Request.Context(), params)
	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings by subject, or active bookings for a resource on a date
// @Tags bookings
// @Produce json
// @Param subject_id query string false "Subject ID"
// @Param resource_id query string false "Resource ID (requires date)"
// @Param date query string false "Calendar date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if resourceParam := c.Query("resource_id"); resourceParam != "" {
		resourceID, err := uuid.Parse(resourceParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource_id",
			})
			return
		}
		day, err := time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing date, expected YYYY-MM-DD",
			})
			return
		}

		views, err := h.bookingQueries.ListActive(c.Request.Context(), resourceID, day)
		if err != nil {
			h.mapBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FromBookingViews(views))
		return
	}

	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing subject_id",
		})
		return
	}

	views, err := h.bookingQueries.ListBySubject(c.Request.Context(), subjectID)
	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Cancel booking
// @Description Cancel a booking; idempotent
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancel request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.CancelBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.Cancel(c.Request.Context(), id, req.SubjectID)
	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking status
// @Description Apply a status transition (confirm, complete)
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	status, ok := req.ToStatus()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown booking status",
		})
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// Conflicts must stay distinguishable from generic server errors so a UI can
// say "slot no longer available" instead of "something went wrong".
func (h *BookingHandler) mapBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Time slot is no longer available",
		})
	case errors.Is(err, errs.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{
			"error": "An identical booking already exists for this subject",
		})
	case errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, errs.ErrUnknownService):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown service",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time interval",
		})
	case errors.Is(err, errs.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Storage temporarily unavailable, retry later",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
