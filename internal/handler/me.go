package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/repository"
)

// Preferences returns the current user's saved preferences, or the defaults
// if they never saved any.
func (h *AuthHandler) Preferences(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Users.Preferences(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"preferences": p})
}

// UpdatePreferences replaces the current user's preferences wholesale.
func (h *AuthHandler) UpdatePreferences(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var p model.Preferences
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(p.FavoriteLocations) > 20 || len(p.PreferredSports) > 20 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "too many entries"})
	}
	for i, s := range p.PreferredSports {
		p.PreferredSports[i] = strings.ToLower(strings.TrimSpace(s))
	}
	for i, l := range p.FavoriteLocations {
		p.FavoriteLocations[i] = strings.TrimSpace(l)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePreferences(ctx, uid, p); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"preferences": p})
}

// Favorites returns the user's bookmarked turfs, newest listing first.
func (h *AuthHandler) Favorites(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	turfs, err := h.Users.FavoriteTurfs(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]turfResp, 0, len(turfs))
	for _, t := range turfs {
		out = append(out, toTurfResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"turfs": out, "count": len(out)})
}

// AddFavorite bookmarks a turf. Idempotent: bookmarking twice succeeds.
func (h *AuthHandler) AddFavorite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	turfID, ok := pathID(c, "turfID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.AddFavorite(ctx, uid, turfID); err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite drops a bookmark. Idempotent like AddFavorite.
func (h *AuthHandler) RemoveFavorite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	turfID, ok := pathID(c, "turfID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.RemoveFavorite(ctx, uid, turfID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
