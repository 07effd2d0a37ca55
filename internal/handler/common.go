// Package handler defines the HTTP handlers for the turf booking API.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/model"
)

const dateLayout = "2006-01-02"

// getUserID extracts the authenticated user's id from the request context.
// JWTAuth stores it as uint64; anything else means the middleware did not
// run on this route.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the current request carries the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// pathID parses a numeric path parameter; 0 is never a valid id.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// pageParams reads limit/offset query parameters with sane bounds.
func pageParams(c echo.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// publiclyVisible reports whether a listing may be shown to customers:
// it must be active and have passed admin verification. Detail, availability
// and booking endpoints all gate on this so an unverified turf is never
// reachable by id even though its owner can see it.
func publiclyVisible(t model.Turf) bool {
	return t.IsActive && t.IsVerified
}

// parseDate parses a YYYY-MM-DD query or body value as a UTC calendar day.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ----- shared response shapes -----

type turfResp struct {
	ID           uint64   `json:"id"`
	OwnerID      uint64   `json:"owner_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Latitude     float64  `json:"latitude,omitempty"`
	Longitude    float64  `json:"longitude,omitempty"`
	Sports       []string `json:"sports"`
	Amenities    []string `json:"amenities"`
	HourlyRate   float64  `json:"hourly_rate"`
	PeakHourRate float64  `json:"peak_hour_rate"`
	Currency     string   `json:"currency"`
	MaxPlayers   int      `json:"max_players"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email,omitempty"`
	RatingAvg    float64  `json:"rating_avg"`
	RatingCount  int      `json:"rating_count"`
	IsActive     bool     `json:"is_active"`
	IsVerified   bool     `json:"is_verified"`
}

func toTurfResp(t model.Turf) turfResp {
	return turfResp{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Name:         t.Name,
		Description:  t.Description,
		Address:      t.Address,
		City:         t.City,
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		Sports:       t.Sports,
		Amenities:    t.Amenities,
		HourlyRate:   t.HourlyRate,
		PeakHourRate: t.PeakHourRate,
		Currency:     t.Currency,
		MaxPlayers:   t.MaxPlayers,
		ContactPhone: t.ContactPhone,
		ContactEmail: t.ContactEmail,
		RatingAvg:    t.RatingAvg,
		RatingCount:  t.RatingCount,
		IsActive:     t.IsActive,
		IsVerified:   t.IsVerified,
	}
}

type bookingResp struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	TurfID        uint64     `json:"turf_id"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	DurationHours float64    `json:"duration_hours"`
	PlayerCount   int        `json:"player_count"`
	BaseAmount    float64    `json:"base_amount"`
	Taxes         float64    `json:"taxes"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Status        string     `json:"status"`
	CancelledBy   string     `json:"cancelled_by,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	RefundAmount  float64    `json:"refund_amount,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:            b.ID,
		UserID:        b.UserID,
		TurfID:        b.TurfID,
		Date:          b.Date.Format(dateLayout),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.DurationHours,
		PlayerCount:   b.PlayerCount,
		BaseAmount:    b.BaseAmount,
		Taxes:         b.Taxes,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		TransactionID: b.TransactionID,
		PaidAt:        b.PaidAt,
		Status:        b.Status,
		CancelledBy:   b.CancelledBy,
		CancelledAt:   b.CancelledAt,
		CancelReason:  b.CancelReason,
		RefundAmount:  b.RefundAmount,
		CreatedAt:     b.CreatedAt,
	}
}

func toBookingResps(bs []model.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResp(b))
	}
	return out
}
