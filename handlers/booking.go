package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayhive/models"
	"stayhive/services/booking"
	"stayhive/services/rooms"
)

// BookingHandler exposes the booking session engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingSessionService
	Rooms  *rooms.HTTPClient
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingSessionService, roomsClient *rooms.HTTPClient, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Rooms: roomsClient, Logger: logger}
}

// respondError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		ve *booking.ValidationError
		ne *booking.NetworkError
		be *booking.BusinessRuleError
		pe *booking.PaymentError
	)
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.As(err, &be):
		c.JSON(http.StatusConflict, gin.H{"error": be.Message})
	case errors.As(err, &pe):
		c.JSON(http.StatusBadRequest, gin.H{"error": pe.Message})
	case errors.As(err, &ne):
		h.Logger.Error("upstream call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable, please try again"})
	default:
		h.Logger.Error("unhandled booking error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// OpenSession starts a session for a room.
func (h *BookingHandler) OpenSession(c *gin.Context) {
	var req booking.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.OpenSession(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetSession returns the current draft.
func (h *BookingHandler) GetSession(c *gin.Context) {
	draft, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SelectDate applies one calendar click.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	day, err := models.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}
	draft, err := h.Svc.SelectDate(c.Request.Context(), c.Param("sessionID"), day)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ClearSelection resets the selected range.
func (h *BookingHandler) ClearSelection(c *gin.Context) {
	draft, err := h.Svc.ClearSelection(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// GetCalendar renders the month at ?offset= months from the current one.
func (h *BookingHandler) GetCalendar(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	view, err := h.Svc.MonthView(c.Request.Context(), c.Param("sessionID"), offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetUnavailableDates replaces the room's blocked-out days.
func (h *BookingHandler) SetUnavailableDates(c *gin.Context) {
	var req struct {
		Dates []string `json:"dates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	days := make([]time.Time, 0, len(req.Dates))
	for _, s := range req.Dates {
		d, err := models.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": s})
			return
		}
		days = append(days, d)
	}
	draft, err := h.Svc.SetUnavailableDates(c.Request.Context(), c.Param("sessionID"), days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetGuestCounts updates the party size.
func (h *BookingHandler) SetGuestCounts(c *gin.Context) {
	var req struct {
		Adults   int `json:"adults"`
		Children int `json:"children"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.SetGuestCounts(c.Request.Context(), c.Param("sessionID"), req.Adults, req.Children)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ApplyCoupon resolves a coupon code for the session.
func (h *BookingHandler) ApplyCoupon(c *gin.Context) {
	var req struct {
		CouponCode string `json:"coupon_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.ApplyCoupon(c.Request.Context(), c.Param("sessionID"), req.CouponCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetGuestInfo stores the guest details.
func (h *BookingHandler) SetGuestInfo(c *gin.Context) {
	var guest models.GuestInfo
	if err := c.ShouldBindJSON(&guest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.SetGuestInfo(c.Request.Context(), c.Param("sessionID"), guest)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// GoToStep moves the checkout workflow.
func (h *BookingHandler) GoToStep(c *gin.Context) {
	var req struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.GoToStep(c.Request.Context(), c.Param("sessionID"), models.WorkflowStep(req.Step))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// InitiatePayment opens a payment order and returns the handoff payload.
func (h *BookingHandler) InitiatePayment(c *gin.Context) {
	handoff, err := h.Svc.InitiatePayment(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handoff)
}

// PaymentCallback handles the gateway's terminal result for a session.
func (h *BookingHandler) PaymentCallback(c *gin.Context) {
	var result models.PaymentResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	draft, err := h.Svc.CompletePayment(c.Request.Context(), c.Param("sessionID"), result)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           "booking confirmed",
		"payment_reference": result.Reference,
		"booking":           draft,
	})
}

// CancelSession discards the draft.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Svc.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RoomAvailability proxies an availability check to the room subsystem.
func (h *BookingHandler) RoomAvailability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Query("room_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if _, err := models.ParseDate(checkIn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
		return
	}
	if _, err := models.ParseDate(checkOut); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
		return
	}
	available, err := h.Rooms.CheckAvailability(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": available})
}
