package router

import (
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/handler"
	"github.com/turfease/turf-booking/internal/middleware"
	"github.com/turfease/turf-booking/internal/model"
)

// RegisterCustomer registers booking, review and notification endpoints.
// Creating a booking is a USER operation; reading and cancelling are open
// to every role because turf owners and admins act on bookings too, with
// the handlers enforcing per-booking access.
func RegisterCustomer(e *echo.Echo, b *handler.CustomerHandler, r *handler.ReviewHandler, n *handler.NotificationHandler, jwtSecret string) {
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	user := auth.Group("", middleware.RequireRole(model.RoleUser))
	user.POST("/bookings", b.CreateBooking)
	user.POST("/bookings/:id/payment", b.Pay)
	user.POST("/reviews", r.CreateReview)
	user.PUT("/reviews/:id", r.UpdateReview)

	auth.GET("/bookings", b.MyBookings)
	auth.GET("/bookings/:id", b.GetBooking)
	auth.POST("/bookings/:id/cancel", b.CancelBooking)
	auth.DELETE("/reviews/:id", r.DeleteReview)

	auth.GET("/notifications", n.List)
	auth.GET("/notifications/unread-count", n.UnreadCount)
	auth.POST("/notifications/:id/read", n.MarkRead)
	auth.POST("/notifications/read-all", n.MarkAllRead)
	auth.DELETE("/notifications/:id", n.Delete)
}
