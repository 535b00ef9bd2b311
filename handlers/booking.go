package handlers

import (
	"errors"
	"net/http"

	bookingRepo "fieldbook/database/repository/booking"
	"fieldbook/middleware"
	"fieldbook/services/booking"
	"fieldbook/services/schedule"
	"fieldbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling session and booking endpoints.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// InitiateSession starts a scheduling session for a field+date and
// returns the first classified slot grid.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		FieldID string `json:"fieldId" binding:"required"`
		Date    string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.StartSession(c.Request.Context(), middleware.CurrentUserID(c), input.FieldID, input.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSession re-renders the session: fresh snapshot, fresh statuses.
func (h *BookingHandler) GetSession(c *gin.Context) {
	result, err := h.Service.RenderSession(c.Request.Context(), c.Param("sessionID"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SelectSlot applies one slot-click event to the session's selection.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		Hour *int `json:"hour" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.SelectHour(c.Request.Context(), c.Param("sessionID"), middleware.CurrentUserID(c), *input.Hour)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmBooking validates the committed range and submits it.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	record, err := h.Service.ConfirmBooking(c.Request.Context(), c.Param("sessionID"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}

// CancelSession discards the session and its selection.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListMyBookings returns the requesting user's bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking soft-deletes an owned booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	record, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}

// respondError maps service errors onto the error contract: domain
// rejections carry their reason and a conflict status, expired
// sessions are 404, everything else is a retryable transport failure
// that leaves the selection untouched.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	if rangeErr, ok := schedule.AsRangeError(err); ok {
		utils.JSONRejection(c, http.StatusConflict, rangeErr.Reason, rangeErr.Message)
		return
	}
	switch {
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, bookingRepo.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrSessionOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNoRangeSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("booking request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking service unavailable, please retry", err.Error())
	}
}
