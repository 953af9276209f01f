package routes

import (
	"github.com/gin-gonic/gin"

	"stayhive/handlers"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/session", bh.OpenSession)
		booking.GET("/session/:sessionID", bh.GetSession)
		booking.DELETE("/session/:sessionID", bh.CancelSession)

		booking.POST("/session/:sessionID/dates", bh.SelectDate)
		booking.DELETE("/session/:sessionID/dates", bh.ClearSelection)
		booking.GET("/session/:sessionID/calendar", bh.GetCalendar)
		booking.PUT("/session/:sessionID/unavailable", bh.SetUnavailableDates)

		booking.PUT("/session/:sessionID/guests", bh.SetGuestCounts)
		booking.PUT("/session/:sessionID/guest-info", bh.SetGuestInfo)
		booking.POST("/session/:sessionID/coupon", bh.ApplyCoupon)
		booking.PUT("/session/:sessionID/step", bh.GoToStep)

		booking.POST("/session/:sessionID/payment", bh.InitiatePayment)
		booking.POST("/session/:sessionID/payment/callback", bh.PaymentCallback)
	}

	roomsGroup := r.Group("/api/rooms")
	{
		roomsGroup.GET("/availability", bh.RoomAvailability)
	}
}
