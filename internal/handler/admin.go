package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/repository"
)

// AdminHandler serves the moderation and reporting endpoints. All routes
// are mounted behind RequireRole(ADMIN).
type AdminHandler struct {
	Users         *repository.UserRepo
	Turfs         *repository.TurfRepo
	Bookings      *repository.BookingRepo
	Notifications *repository.NotificationRepo
}

func NewAdminHandler(u *repository.UserRepo, t *repository.TurfRepo, b *repository.BookingRepo, n *repository.NotificationRepo) *AdminHandler {
	if u == nil || t == nil || b == nil || n == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: u, Turfs: t, Bookings: b, Notifications: n}
}

// PendingTurfs handles GET /v1/admin/turfs/pending, the review queue of
// listings awaiting verification.
func (h *AdminHandler) PendingTurfs(c echo.Context) error {
	limit, offset := pageParams(c)
	turfs, total, err := h.Turfs.List(c.Request().Context(), repository.TurfFilter{
		OnlyPending: true, Limit: limit, Offset: offset, SortBy: "created_at",
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]turfResp, 0, len(turfs))
	for _, t := range turfs {
		out = append(out, toTurfResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"turfs": out, "total": total, "limit": limit, "offset": offset})
}

// VerifyTurf handles POST /v1/admin/turfs/:id/verify with an "approved"
// flag. The owner is notified either way.
func (h *AdminHandler) VerifyTurf(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	var req struct {
		Approved bool   `json:"approved"`
		Reason   string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Turfs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Turfs.SetVerified(ctx, id, req.Approved); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	note := model.Notification{
		RecipientID: t.OwnerID,
		TurfID:      &t.ID,
	}
	if req.Approved {
		note.Type = model.NotifyTurfApproved
		note.Title = "Listing approved"
		note.Message = t.Name + " is now visible to customers."
	} else {
		note.Type = model.NotifyTurfRejected
		note.Title = "Listing rejected"
		note.Message = t.Name + " was not approved."
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			note.Message += " Reason: " + reason
		}
	}
	_ = h.Notifications.Create(ctx, &note)

	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_verified": req.Approved})
}

// AllBookings handles GET /v1/admin/bookings across every turf and user.
func (h *AdminHandler) AllBookings(c echo.Context) error {
	limit, offset := pageParams(c)
	f := repository.BookingFilter{Status: c.QueryParam("status"), Limit: limit, Offset: offset}
	if d, err := parseDate(c.QueryParam("date")); err == nil {
		f.Date = &d
	}
	bookings, total, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingResps(bookings), "total": total, "limit": limit, "offset": offset})
}

// Analytics handles GET /v1/admin/analytics.
func (h *AdminHandler) Analytics(c echo.Context) error {
	a, err := h.Bookings.Analytics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_bookings":     a.TotalBookings,
		"confirmed_bookings": a.ConfirmedBookings,
		"cancelled_bookings": a.CancelledBookings,
		"completed_bookings": a.CompletedBookings,
		"total_revenue":      a.TotalRevenue,
	})
}

// SendNotification handles POST /v1/admin/notifications/send. With an
// explicit recipient list it targets those users; with none it broadcasts
// to every active account.
func (h *AdminHandler) SendNotification(c echo.Context) error {
	var req struct {
		RecipientIDs []uint64 `json:"recipient_ids"`
		Type         string   `json:"type"`
		Title        string   `json:"title"`
		Message      string   `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if req.Title == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and message required"})
	}
	typ := strings.TrimSpace(req.Type)
	if typ == "" {
		typ = model.NotifySystem
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	recipients := req.RecipientIDs
	if len(recipients) == 0 {
		var err error
		recipients, err = h.Notifications.AllRecipientIDs(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}
	sent, err := h.Notifications.CreateBatch(ctx, recipients, typ, req.Title, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"sent": sent})
}

// AllNotifications handles GET /v1/admin/notifications, every user's
// notifications with the recipient resolved.
func (h *AdminHandler) AllNotifications(c echo.Context) error {
	limit, offset := pageParams(c)
	f := repository.NotificationFilter{
		Type:   c.QueryParam("type"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.QueryParam("unread"); v != "" {
		unread := v == "true" || v == "1"
		f.Unread = &unread
	}

	notes, total, err := h.Notifications.ListAll(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(notes))
	for _, n := range notes {
		m := toNotificationResp(n.Notification)
		m["recipient"] = echo.Map{"id": n.RecipientID, "name": n.RecipientName, "email": n.RecipientEmail}
		out = append(out, m)
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": out, "total": total, "limit": limit, "offset": offset})
}

// NotificationAnalytics handles GET /v1/admin/notifications/analytics.
func (h *AdminHandler) NotificationAnalytics(c echo.Context) error {
	a, err := h.Notifications.Analytics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":   a.Total,
		"read":    a.Read,
		"unread":  a.Unread,
		"by_type": a.ByType,
	})
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset := pageParams(c)
	users, total, err := h.Users.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"id":         u.ID,
			"name":       u.Name,
			"email":      u.Email,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out, "total": total, "limit": limit, "offset": offset})
}

// UpdateUserRole handles PUT /v1/admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case model.RoleUser, model.RoleOwner, model.RoleAdmin:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be USER, OWNER or ADMIN"})
	}

	if err := h.Users.UpdateRole(c.Request().Context(), id, role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": role})
}

// UpdateUserStatus handles PUT /v1/admin/users/:id/status, enabling or
// disabling an account. Disabled users cannot log in or refresh.
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active required"})
	}

	if err := h.Users.UpdateStatus(c.Request().Context(), id, *req.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": *req.IsActive})
}
