package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/queue"
	"github.com/turfease/turf-booking/internal/repository"
	queue_publisher "github.com/turfease/turf-booking/internal/service"
)

// CustomerHandler serves booking endpoints for authenticated customers.
// Methods assume JWT middleware already ran; they re-check ownership where
// a booking id arrives via the path.
type CustomerHandler struct {
	Turfs         *repository.TurfRepo
	Bookings      *repository.BookingRepo
	Notifications *repository.NotificationRepo
}

func NewCustomerHandler(t *repository.TurfRepo, b *repository.BookingRepo, n *repository.NotificationRepo) *CustomerHandler {
	if t == nil || b == nil || n == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Turfs: t, Bookings: b, Notifications: n}
}

var paymentMethods = map[string]bool{
	"card": true, "upi": true, "netbanking": true, "wallet": true, "cash": true,
}

type createBookingReq struct {
	TurfID        uint64 `json:"turf_id"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM
	EndTime       string `json:"end_time"`   // HH:MM
	PlayerCount   int    `json:"player_count"`
	PaymentMethod string `json:"payment_method"`
}

// CreateBooking handles POST /v1/bookings. The request is validated against
// the turf's schedule, capacity and existing reservations, priced at the
// base hourly rate, then inserted. The insert re-checks conflicts under a
// row lock, so two concurrent requests for overlapping intervals cannot
// both succeed.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TurfID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "turf_id required"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = "cash"
	}
	if !paymentMethods[method] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported payment method"})
	}
	if req.PlayerCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "player_count must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	t, err := h.Turfs.GetByID(ctx, req.TurfID)
	if err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !publiclyVisible(t) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
	}

	sched, err := h.Turfs.WeeklySchedule(ctx, t.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	existing, err := h.Bookings.ReservationsFor(ctx, t.ID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	iv := availability.Interval{Start: req.StartTime, End: req.EndTime}
	breq := availability.BookingRequest{Date: date, Interval: iv, PlayerCount: req.PlayerCount}
	if err := availability.ValidateBookingRequest(breq, sched, t.MaxPlayers, existing, time.Now()); err != nil {
		if conflict, ok := availability.IsConflict(err); ok {
			taken := make([]string, 0, len(conflict.Conflicts))
			for _, r := range conflict.Conflicts {
				taken = append(taken, r.Interval.String())
			}
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot is already booked", "conflicts": taken})
		}
		switch err {
		case availability.ErrInvalidInterval:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time interval"})
		case availability.ErrPastDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book a past date"})
		case availability.ErrTurfClosed:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "turf is closed for the requested time"})
		case availability.ErrCapacityExceeded:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("player count exceeds capacity of %d", t.MaxPlayers)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	quote := availability.ComputePricing(iv.DurationHours(), availability.PricingRule{
		HourlyRate:   t.HourlyRate,
		PeakHourRate: t.PeakHourRate,
	})
	b := model.Booking{
		UserID:        userID,
		TurfID:        t.ID,
		Date:          date,
		StartTime:     iv.Start,
		EndTime:       iv.End,
		DurationHours: iv.DurationHours(),
		PlayerCount:   req.PlayerCount,
		BaseAmount:    quote.BaseAmount,
		Taxes:         quote.Taxes,
		TotalAmount:   quote.TotalAmount,
		PaymentMethod: method,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		if err == repository.ErrSlotTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot is already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// MyBookings handles GET /v1/bookings for the current user, optionally
// filtered by status.
func (h *CustomerHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit, offset := pageParams(c)
	f := repository.BookingFilter{UserID: userID, Status: c.QueryParam("status"), Limit: limit, Offset: offset}
	if d, err := parseDate(c.QueryParam("date")); err == nil {
		f.Date = &d
	}

	bookings, total, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingResps(bookings), "total": total, "limit": limit, "offset": offset})
}

// GetBooking handles GET /v1/bookings/:id. Visible to the booking's owner,
// the turf's owner and admins.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID != userID && !isAdmin(c) {
		t, err := h.Turfs.GetByID(ctx, b.TurfID)
		if err != nil || t.OwnerID != userID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// CancelBooking handles POST /v1/bookings/:id/cancel. Customers may cancel
// their own upcoming bookings; the turf owner and admins may cancel any
// booking at the turf. Paid bookings are refunded in full.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	t, err := h.Turfs.GetByID(ctx, b.TurfID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cancelledBy := ""
	switch {
	case isAdmin(c):
		cancelledBy = "admin"
	case t.OwnerID == userID:
		cancelledBy = "owner"
	case b.UserID == userID:
		cancelledBy = "user"
		// Customers cannot cancel once the slot has started.
		start, perr := time.Parse(dateLayout+" 15:04", b.Date.Format(dateLayout)+" "+b.StartTime)
		if perr == nil && time.Now().UTC().After(start) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking has already started"})
		}
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	b, err = h.Bookings.Cancel(ctx, id, cancelledBy, strings.TrimSpace(req.Reason))
	if err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	// Tell the party that did not initiate the cancellation.
	recipient := b.UserID
	if cancelledBy == "user" {
		recipient = t.OwnerID
	}
	slot := fmt.Sprintf("%s %s-%s", b.Date.Format(dateLayout), b.StartTime, b.EndTime)
	note := model.Notification{
		RecipientID: recipient,
		Type:        model.NotifyBookingCancelled,
		Title:       "Booking cancelled",
		Message:     fmt.Sprintf("Booking for %s on %s was cancelled by the %s.", t.Name, slot, cancelledBy),
		BookingID:   &b.ID,
		TurfID:      &t.ID,
	}
	_ = h.Notifications.Create(ctx, &note)

	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Pay handles POST /v1/bookings/:id/payment. Payment capture is simulated:
// the booking is marked paid with a generated transaction reference,
// confirmed, and a booking.confirmed event is published for downstream
// consumers.
func (h *CustomerHandler) Pay(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	txnID := uuid.NewString()
	if err := h.Bookings.MarkPaid(ctx, id, txnID); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already paid or cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	t, terr := h.Turfs.GetByID(ctx, b.TurfID)
	if terr == nil {
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
		// Fire and forget; broker downtime must not fail the payment.
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = queue_publisher.PublishBookingConfirmed(pubCtx, ev)
		}()
	}

	note := model.Notification{
		RecipientID: userID,
		Type:        model.NotifyPaymentSuccess,
		Title:       "Payment received",
		Message:     fmt.Sprintf("Payment of %.2f for booking TB-%06d completed (ref %s).", b.TotalAmount, b.ID, txnID),
		BookingID:   &b.ID,
		TurfID:      &b.TurfID,
	}
	_ = h.Notifications.Create(ctx, &note)

	b, err = h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
