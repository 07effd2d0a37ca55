package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/repository"
)

// OwnerHandler serves turf management endpoints for owners. Every method
// resolves the acting user from the JWT context and repositories enforce
// ownership in their WHERE clauses; admins pass ownerID 0 to bypass.
type OwnerHandler struct {
	Turfs         *repository.TurfRepo
	Bookings      *repository.BookingRepo
	Notifications *repository.NotificationRepo
}

func NewOwnerHandler(t *repository.TurfRepo, b *repository.BookingRepo, n *repository.NotificationRepo) *OwnerHandler {
	if t == nil || b == nil || n == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Turfs: t, Bookings: b, Notifications: n}
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type turfReq struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Sports       []string `json:"sports"`
	Amenities    []string `json:"amenities"`
	HourlyRate   float64  `json:"hourly_rate"`
	PeakHourRate float64  `json:"peak_hour_rate"`
	Currency     string   `json:"currency"`
	MaxPlayers   int      `json:"max_players"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	IsActive     *bool    `json:"is_active"`
}

func (r *turfReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	if r.Name == "" || r.Address == "" || r.City == "" {
		return "name, address and city are required"
	}
	if r.HourlyRate <= 0 {
		return "hourly_rate must be positive"
	}
	if r.PeakHourRate < 0 {
		return "peak_hour_rate cannot be negative"
	}
	if r.MaxPlayers < 0 {
		return "max_players cannot be negative"
	}
	if len(r.Sports) == 0 {
		return "at least one sport is required"
	}
	for i, s := range r.Sports {
		r.Sports[i] = strings.ToLower(strings.TrimSpace(s))
	}
	if r.Currency == "" {
		r.Currency = "INR"
	}
	return ""
}

// CreateTurf handles POST /v1/owner/turfs. New listings start unverified
// and stay hidden from customers until an admin approves them.
func (h *OwnerHandler) CreateTurf(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req turfReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Turf{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  strings.TrimSpace(req.Description),
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Sports:       req.Sports,
		Amenities:    req.Amenities,
		HourlyRate:   req.HourlyRate,
		PeakHourRate: req.PeakHourRate,
		Currency:     req.Currency,
		MaxPlayers:   req.MaxPlayers,
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		IsActive:     true,
	}
	if err := h.Turfs.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create turf failed"})
	}
	return c.JSON(http.StatusCreated, toTurfResp(t))
}

// MyTurfs handles GET /v1/owner/turfs, listing all turfs of the current
// owner including inactive and unverified ones.
func (h *OwnerHandler) MyTurfs(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit, offset := pageParams(c)

	turfs, total, err := h.Turfs.List(c.Request().Context(), repository.TurfFilter{
		OwnerID: ownerID, Limit: limit, Offset: offset, SortBy: "created_at", SortDesc: true,
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

// UpdateTurf handles PUT /v1/owner/turfs/:id.
func (h *OwnerHandler) UpdateTurf(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	var req turfReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if isAdmin(c) {
		ownerID = 0 // repository skips the ownership clause
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	t := model.Turf{
		ID:           id,
		Name:         req.Name,
		Description:  strings.TrimSpace(req.Description),
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Sports:       req.Sports,
		Amenities:    req.Amenities,
		HourlyRate:   req.HourlyRate,
		PeakHourRate: req.PeakHourRate,
		Currency:     req.Currency,
		MaxPlayers:   req.MaxPlayers,
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		IsActive:     active,
	}
	if err := h.Turfs.Update(ctx, &t, ownerID); err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTurf handles DELETE /v1/owner/turfs/:id. The listing, its schedule
// and closures are removed; booking history survives.
func (h *OwnerHandler) DeleteTurf(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	if isAdmin(c) {
		ownerID = 0
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Turfs.Delete(ctx, id, ownerID); err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type scheduleEntryReq struct {
	Day       string  `json:"day"`
	IsOpen    bool    `json:"is_open"`
	OpenTime  string  `json:"open_time"`
	CloseTime string  `json:"close_time"`
	PeakStart *string `json:"peak_start"`
	PeakEnd   *string `json:"peak_end"`
}

// ReplaceSchedule handles PUT /v1/owner/turfs/:id/schedule, replacing the
// full weekly schedule atomically. Each weekday may appear once; open days
// need a valid open/close window and an optional peak window inside it.
func (h *OwnerHandler) ReplaceSchedule(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	var req struct {
		Entries []scheduleEntryReq `json:"schedule"`
	}
	if err := c.Bind(&req); err != nil || len(req.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule entries required"})
	}

	seen := make(map[string]bool, len(req.Entries))
	entries := make([]model.ScheduleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		day := strings.ToLower(strings.TrimSpace(e.Day))
		if !weekdays[day] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown weekday: " + e.Day})
		}
		if seen[day] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate weekday: " + day})
		}
		seen[day] = true

		entry := model.ScheduleEntry{TurfID: id, Day: day, IsOpen: e.IsOpen}
		if e.IsOpen {
			hours := availability.Interval{Start: e.OpenTime, End: e.CloseTime}
			if !hours.Valid() {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid open/close times for " + day})
			}
			entry.OpenTime = e.OpenTime
			entry.CloseTime = e.CloseTime
			if e.PeakStart != nil || e.PeakEnd != nil {
				if e.PeakStart == nil || e.PeakEnd == nil {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "peak window needs both bounds for " + day})
				}
				peak := availability.Interval{Start: *e.PeakStart, End: *e.PeakEnd}
				if !peak.Valid() || peak.Start < hours.Start || peak.End > hours.End {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "peak window outside open hours for " + day})
				}
				entry.PeakStart = e.PeakStart
				entry.PeakEnd = e.PeakEnd
			}
		}
		entries = append(entries, entry)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if !h.requireTurfOwner(ctx, c, id, ownerID) {
		return nil
	}
	if err := h.Turfs.ReplaceSchedule(ctx, id, entries); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClosures handles GET /v1/owner/turfs/:id/closures.
func (h *OwnerHandler) ListClosures(c echo.Context) error {
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

	closures, err := h.Turfs.ListClosures(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(closures))
	for _, cl := range closures {
		out = append(out, echo.Map{
			"id":     cl.ID,
			"date":   cl.Date.Format(dateLayout),
			"kind":   cl.Kind,
			"reason": cl.Reason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"closures": out})
}

// AddClosure handles POST /v1/owner/turfs/:id/closures, blocking a single
// calendar date for holiday or maintenance.
func (h *OwnerHandler) AddClosure(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	var req struct {
		Date   string `json:"date"`
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	kind := strings.ToUpper(strings.TrimSpace(req.Kind))
	if kind != model.ClosureHoliday && kind != model.ClosureMaintenance {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be HOLIDAY or MAINTENANCE"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if !h.requireTurfOwner(ctx, c, id, ownerID) {
		return nil
	}
	cl := model.Closure{TurfID: id, Date: date, Kind: kind, Reason: strings.TrimSpace(req.Reason)}
	if err := h.Turfs.AddClosure(ctx, &cl); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "date already closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add closure failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id": cl.ID, "date": cl.Date.Format(dateLayout), "kind": cl.Kind, "reason": cl.Reason,
	})
}

// DeleteClosure handles DELETE /v1/owner/turfs/:id/closures/:closureID.
func (h *OwnerHandler) DeleteClosure(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turf id"})
	}
	closureID, ok := pathID(c, "closureID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid closure id"})
	}
	ctx := c.Request().Context()
	if !h.requireTurfOwner(ctx, c, id, ownerID) {
		return nil
	}

	if err := h.Turfs.DeleteClosure(ctx, id, closureID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "closure not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// requireTurfOwner loads the turf and verifies the acting user owns it.
// Admins always pass. When the check fails the error response has already
// been written and ok is false; callers return nil in that case.
func (h *OwnerHandler) requireTurfOwner(ctx context.Context, c echo.Context, turfID, ownerID uint64) (ok bool) {
	t, err := h.Turfs.GetByID(ctx, turfID)
	if err != nil {
		if err == repository.ErrTurfNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return false
	}
	if !isAdmin(c) && t.OwnerID != ownerID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return false
	}
	return true
}
