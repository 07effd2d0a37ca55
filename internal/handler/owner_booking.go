package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/queue"
	"github.com/turfease/turf-booking/internal/repository"
	queue_publisher "github.com/turfease/turf-booking/internal/service"
)

// TurfBookings handles GET /v1/owner/turfs/:id/bookings, the owner's view
// of bookings at one turf, optionally filtered by date and status.
func (h *OwnerHandler) TurfBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	ctx := c.Request().Context()
	if !h.requireTurfOwner(ctx, c, id, ownerID) {
		return nil
	}

	limit, offset := pageParams(c)
	f := repository.BookingFilter{TurfID: id, Status: c.QueryParam("status"), Limit: limit, Offset: offset}
	if d, err := parseDate(c.QueryParam("date")); err == nil {
		f.Date = &d
	}
	bookings, total, err := h.Bookings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingResps(bookings), "total": total, "limit": limit, "offset": offset})
}

// ConfirmBooking handles POST /v1/owner/bookings/:id/confirm: moves a
// pending booking to confirmed and publishes the confirmation event.
func (h *OwnerHandler) ConfirmBooking(c echo.Context) error {
	b, t, done := h.loadOwnedBooking(c)
	if done {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Bookings.SetStatus(ctx, b.ID, availability.StatusConfirmed, availability.StatusPending); err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be confirmed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		BookingRef:  fmt.Sprintf("TB-%06d", b.ID),
		UserID:      b.UserID,
		OwnerID:     t.OwnerID,
		TurfID:      t.ID,
		TurfName:    t.Name,
		Date:        b.Date.Format(dateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "status": availability.StatusConfirmed})
}

// CompleteBooking handles POST /v1/owner/bookings/:id/complete: marks a
// confirmed booking as played and invites the customer to review the turf.
func (h *OwnerHandler) CompleteBooking(c echo.Context) error {
	b, t, done := h.loadOwnedBooking(c)
	if done {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Bookings.SetStatus(ctx, b.ID, availability.StatusCompleted, availability.StatusConfirmed); err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "only confirmed bookings can be completed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	note := model.Notification{
		RecipientID: b.UserID,
		Type:        model.NotifyReviewRequest,
		Title:       "How was your game?",
		Message:     fmt.Sprintf("Leave a review for %s and help other players.", t.Name),
		BookingID:   &b.ID,
		TurfID:      &t.ID,
	}
	_ = h.Notifications.Create(ctx, &note)

	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "status": availability.StatusCompleted})
}

// NoShowBooking handles POST /v1/owner/bookings/:id/no-show: records that
// the customer never arrived. Allowed from pending or confirmed.
func (h *OwnerHandler) NoShowBooking(c echo.Context) error {
	b, _, done := h.loadOwnedBooking(c)
	if done {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	err := h.Bookings.SetStatus(ctx, b.ID, availability.StatusNoShow,
		availability.StatusPending, availability.StatusConfirmed)
	if err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already settled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "status": availability.StatusNoShow})
}

// loadOwnedBooking resolves the :id booking and checks the acting user owns
// the turf it belongs to (admins pass). When done is true a response has
// already been written.
func (h *OwnerHandler) loadOwnedBooking(c echo.Context) (model.Booking, model.Turf, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.Booking{}, model.Turf{}, true
	}
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
		return model.Booking{}, model.Turf{}, true
	}
	ctx := c.Request().Context()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return model.Booking{}, model.Turf{}, true
	}
	t, err := h.Turfs.GetByID(ctx, b.TurfID)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		return model.Booking{}, model.Turf{}, true
	}
	if !isAdmin(c) && t.OwnerID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return model.Booking{}, model.Turf{}, true
	}
	return b, t, false
}
