package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/repository"
)

// PublicHandler serves the unauthenticated catalogue: turf search, listing
// details, per-day availability and reviews.
type PublicHandler struct {
	Turfs    *repository.TurfRepo
	Bookings *repository.BookingRepo
	Reviews  *repository.ReviewRepo
}

func NewPublicHandler(t *repository.TurfRepo, b *repository.BookingRepo, r *repository.ReviewRepo) *PublicHandler {
	if t == nil || b == nil || r == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Turfs: t, Bookings: b, Reviews: r}
}

// ListTurfs handles GET /v1/turfs. Supports city, sport, price range and
// free-text filters plus sorting by price, rating or recency. Only active,
// verified listings are returned.
func (h *PublicHandler) ListTurfs(c echo.Context) error {
	limit, offset := pageParams(c)
	f := repository.TurfFilter{
		City:        strings.TrimSpace(c.QueryParam("city")),
		Sport:       strings.ToLower(strings.TrimSpace(c.QueryParam("sport"))),
		Search:      strings.TrimSpace(c.QueryParam("q")),
		OnlyVisible: true,
		Limit:       limit,
		Offset:      offset,
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil && v >= 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	switch c.QueryParam("sort") {
	case "price":
		f.SortBy = "hourly_rate"
	case "rating":
		f.SortBy = "rating_avg"
		f.SortDesc = true
	default:
		f.SortBy = "created_at"
		f.SortDesc = true
	}
	if c.QueryParam("order") == "desc" {
		f.SortDesc = true
	} else if c.QueryParam("order") == "asc" {
		f.SortDesc = false
	}

	turfs, total, err := h.Turfs.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]turfResp, 0, len(turfs))
	for _, t := range turfs {
		out = append(out, toTurfResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"turfs": out, "total": total, "limit": limit, "offset": offset})
}

// Nearby handles GET /v1/turfs/nearby?lat=&lng=&radius=&limit=. Distances
// are great-circle kilometres; results come back nearest first with the
// distance rounded to two decimals.
func (h *PublicHandler) Nearby(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if errLat != nil || errLng != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat and lng are required"})
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid latitude or longitude"})
	}

	radius := 10.0
	if v, err := strconv.ParseFloat(c.QueryParam("radius"), 64); err == nil && v > 0 {
		radius = v
	}
	if radius > 100 {
		radius = 100
	}
	limit := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	near, err := h.Turfs.Nearby(c.Request().Context(), lat, lng, radius, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(near))
	for _, n := range near {
		out = append(out, echo.Map{
			"turf":        toTurfResp(n.Turf),
			"distance_km": math.Round(n.DistanceKm*100) / 100,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"turfs": out, "count": len(out)})
}

// GetTurf handles GET /v1/turfs/:id, returning the listing together with
// its weekly schedule. Inactive and unverified listings are hidden from the
// public, matching the catalogue filter.
func (h *PublicHandler) GetTurf(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	ctx := c.Request().Context()

	t, err := h.Turfs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !publiclyVisible(t) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
	}

	entries, err := h.Turfs.GetSchedule(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	schedule := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		m := echo.Map{
			"day":        e.Day,
			"is_open":    e.IsOpen,
			"open_time":  e.OpenTime,
			"close_time": e.CloseTime,
		}
		if e.PeakStart != nil && e.PeakEnd != nil {
			m["peak_start"] = *e.PeakStart
			m["peak_end"] = *e.PeakEnd
		}
		schedule = append(schedule, m)
	}
	return c.JSON(http.StatusOK, echo.Map{"turf": toTurfResp(t), "schedule": schedule})
}

// Availability handles GET /v1/turfs/:id/availability?date=YYYY-MM-DD.
// The response partitions the turf's open hours into one-hour slots and
// marks each as bookable or taken; booked intervals are echoed verbatim so
// clients can render bookings that do not align to slot boundaries.
func (h *PublicHandler) Availability(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	ctx := c.Request().Context()

	t, err := h.Turfs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !publiclyVisible(t) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
	}

	sched, err := h.Turfs.WeeklySchedule(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	existing, err := h.Bookings.ReservationsFor(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	day := availability.ComputeDailySlots(sched, date, existing,
		availability.PricingRule{HourlyRate: t.HourlyRate, PeakHourRate: t.PeakHourRate})
	return c.JSON(http.StatusOK, echo.Map{
		"turf_id": id,
		"date":    date.Format(dateLayout),
		"day":     day,
	})
}

// ListReviews handles GET /v1/turfs/:id/reviews.
func (h *PublicHandler) ListReviews(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	limit, offset := pageParams(c)

	reviews, total, err := h.Reviews.ListByTurf(c.Request().Context(), id, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, echo.Map{
			"id":         rv.ID,
			"author":     rv.AuthorName,
			"rating":     rv.Rating,
			"comment":    rv.Comment,
			"created_at": rv.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": out, "total": total, "limit": limit, "offset": offset})
}
