package router

import (
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/handler"
	"github.com/turfease/turf-booking/internal/middleware"
	"github.com/turfease/turf-booking/internal/model"
)

// RegisterAdmin registers moderation and reporting endpoints under
// /v1/admin, restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/turfs/pending", a.PendingTurfs)
	g.POST("/turfs/:id/verify", a.VerifyTurf)

	g.GET("/bookings", a.AllBookings)
	g.GET("/analytics", a.Analytics)

	g.POST("/notifications/send", a.SendNotification)
	g.GET("/notifications", a.AllNotifications)
	g.GET("/notifications/analytics", a.NotificationAnalytics)

	g.GET("/users", a.ListUsers)
	g.PUT("/users/:id/role", a.UpdateUserRole)
	g.PUT("/users/:id/status", a.UpdateUserStatus)
}
