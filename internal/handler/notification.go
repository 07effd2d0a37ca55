package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/repository"
)

// NotificationHandler serves the current user's in-app notification feed.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	if n == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: n}
}

func toNotificationResp(n model.Notification) echo.Map {
	m := echo.Map{
		"id":         n.ID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt.Format(time.RFC3339),
	}
	if n.BookingID != nil {
		m["booking_id"] = *n.BookingID
	}
	if n.TurfID != nil {
		m["turf_id"] = *n.TurfID
	}
	if n.ReadAt != nil {
		m["read_at"] = n.ReadAt.Format(time.RFC3339)
	}
	return m
}

// List handles GET /v1/notifications with optional unread and type filters.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit, offset := pageParams(c)
	f := repository.NotificationFilter{
		RecipientID: userID,
		Type:        c.QueryParam("type"),
		Limit:       limit,
		Offset:      offset,
	}
	if v, err := strconv.ParseBool(c.QueryParam("unread")); err == nil {
		f.Unread = &v
	}

	notes, total, err := h.Notifications.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": out, "total": total, "limit": limit, "offset": offset})
}

// UnreadCount handles GET /v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	count, err := h.Notifications.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	n, err := h.Notifications.MarkRead(c.Request().Context(), id, userID)
	if err != nil {
		switch err {
		case repository.ErrNotificationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toNotificationResp(n))
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Notifications.MarkAllRead(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	if err := h.Notifications.Delete(c.Request().Context(), id, userID); err != nil {
		switch err {
		case repository.ErrNotificationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
