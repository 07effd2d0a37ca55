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

// ReviewHandler serves review creation and maintenance. Listing lives on
// the public catalogue.
type ReviewHandler struct {
	Reviews  *repository.ReviewRepo
	Bookings *repository.BookingRepo
	Turfs    *repository.TurfRepo
}

func NewReviewHandler(r *repository.ReviewRepo, b *repository.BookingRepo, t *repository.TurfRepo) *ReviewHandler {
	if r == nil || b == nil || t == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: r, Bookings: b, Turfs: t}
}

type reviewReq struct {
	TurfID  uint64 `json:"turf_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview handles POST /v1/reviews. A user may review a turf only
// after a completed booking there, and each booking carries at most one
// review. The turf's denormalized rating is refreshed afterwards.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TurfID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "turf_id required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Turfs.GetByID(ctx, req.TurfID); err != nil {
		if err == repository.ErrTurfNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turf not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	bookingID, played, err := h.Bookings.HasCompletedFor(ctx, userID, req.TurfID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !played {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "a completed booking is required to review"})
	}

	rv := model.Review{
		UserID:    userID,
		TurfID:    req.TurfID,
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	_ = h.Turfs.UpdateRating(ctx, req.TurfID)

	return c.JSON(http.StatusCreated, echo.Map{
		"id": rv.ID, "turf_id": rv.TurfID, "rating": rv.Rating, "comment": rv.Comment,
	})
}

// UpdateReview handles PUT /v1/reviews/:id for the review's author.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Reviews.Update(ctx, id, userID, req.Rating, strings.TrimSpace(req.Comment)); err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	_ = h.Turfs.UpdateRating(ctx, rv.TurfID)
	return c.NoContent(http.StatusNoContent)
}

// DeleteReview handles DELETE /v1/reviews/:id. Authors delete their own
// reviews; admins may delete any.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if isAdmin(c) {
		userID = 0 // repository skips the ownership clause
	}
	if err := h.Reviews.Delete(ctx, id, userID); err != nil {
		if err == repository.ErrReviewNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Turfs.UpdateRating(ctx, rv.TurfID)
	return c.NoContent(http.StatusNoContent)
}
