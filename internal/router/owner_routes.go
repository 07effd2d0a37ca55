package router

import (
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/handler"
	"github.com/turfease/turf-booking/internal/middleware"
	"github.com/turfease/turf-booking/internal/model"
)

// RegisterOwner registers turf management endpoints under /v1/owner. All
// routes require the OWNER or ADMIN role; repositories additionally scope
// writes to the acting owner's rows.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin),
	)

	// ---- Listings ----
	g.POST("/turfs", o.CreateTurf)
	g.GET("/turfs", o.MyTurfs)
	g.PUT("/turfs/:id", o.UpdateTurf)
	g.DELETE("/turfs/:id", o.DeleteTurf)

	// ---- Schedule and closures ----
	g.PUT("/turfs/:id/schedule", o.ReplaceSchedule)
	g.GET("/turfs/:id/closures", o.ListClosures)
	g.POST("/turfs/:id/closures", o.AddClosure)
	g.DELETE("/turfs/:id/closures/:closureID", o.DeleteClosure)

	// ---- Bookings at the owner's turfs ----
	g.GET("/turfs/:id/bookings", o.TurfBookings)
	g.POST("/bookings/:id/confirm", o.ConfirmBooking)
	g.POST("/bookings/:id/complete", o.CompleteBooking)
	g.POST("/bookings/:id/no-show", o.NoShowBooking)
}
