// Package router wires handlers, auth middleware and route groups onto the
// Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/handler"
	"github.com/turfease/turf-booking/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication and profile endpoints.
// Register, login and the token exchanges live under /v1/auth without
// middleware; profile operations require a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body without a JWT; the
	// protected variant below revokes every session instead.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateProfile)
	auth.PUT("/me/password", a.ChangePassword)
	auth.GET("/me/preferences", a.Preferences)
	auth.PUT("/me/preferences", a.UpdatePreferences)
	auth.GET("/me/favorites", a.Favorites)
	auth.POST("/me/favorites/:turfID", a.AddFavorite)
	auth.DELETE("/me/favorites/:turfID", a.RemoveFavorite)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated catalogue. The supplied
// cache middleware (a no-op when Redis is absent) fronts the listing and
// review endpoints; availability is served fresh so new bookings show up
// immediately.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/turfs", p.ListTurfs, cache)
	e.GET("/v1/turfs/search", p.ListTurfs, cache)
	e.GET("/v1/turfs/nearby", p.Nearby, cache)
	e.GET("/v1/turfs/:id", p.GetTurf, cache)
	e.GET("/v1/turfs/:id/reviews", p.ListReviews, cache)
	e.GET("/v1/turfs/:id/availability", p.Availability)
}
