package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/service"
)

const maxReviewBodySize = 64 * 1024

type reviewCreateRequest struct {
	RestaurantID string `form:"restaurant_id" validate:"required,number"`
	Name         string `form:"name" validate:"required"`
	Rating       string `form:"rating" validate:"required,numeric"`
	Comments     string `form:"comments" validate:"required"`
}

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(r.URL.Query().Get("restaurant_id"))

		var (
			reviews []*domain.Review
			err     error
		)
		if idParam == "" {
			reviews, err = h.catalog.ListReviews(r.Context())
		} else {
			id, perr := strconv.ParseInt(idParam, 10, 64)
			if perr != nil {
				writeError(h.logger, w, http.StatusBadRequest, "invalid restaurant_id")
				return
			}
			reviews, err = h.catalog.ListReviewsByRestaurant(r.Context(), id)
		}
		if err != nil {
			h.logger.Error("review list fetch failed", "restaurant_id", idParam, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "failed to list reviews")
			return
		}
		writeJSON(h.logger, w, http.StatusOK, toReviewResponses(reviews))
	}
}

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxReviewBodySize)
		if err := r.ParseForm(); err != nil {
			writeError(h.logger, w, http.StatusBadRequest, "invalid form body")
			return
		}

		req := reviewCreateRequest{
			RestaurantID: strings.TrimSpace(r.PostFormValue("restaurant_id")),
			Name:         strings.TrimSpace(r.PostFormValue("name")),
			Rating:       strings.TrimSpace(r.PostFormValue("rating")),
			Comments:     strings.TrimSpace(r.PostFormValue("comments")),
		}
		if err := h.validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				writeError(h.logger, w, http.StatusBadRequest, "missing or invalid field: "+verrs[0].Field())
				return
			}
			writeError(h.logger, w, http.StatusBadRequest, "invalid review")
			return
		}

		restaurantID, err := strconv.ParseInt(req.RestaurantID, 10, 64)
		if err != nil {
			writeError(h.logger, w, http.StatusBadRequest, "invalid restaurant_id")
			return
		}
		rating, err := strconv.ParseFloat(req.Rating, 64)
		if err != nil || !domain.ValidRating(rating) {
			writeError(h.logger, w, http.StatusBadRequest, "invalid rating")
			return
		}

		review, err := h.catalog.CreateReview(r.Context(), restaurantID, req.Name, rating, req.Comments)
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(h.logger, w, http.StatusNotFound, "restaurant not found")
			return
		}
		if err != nil {
			h.logger.Error("review create failed", "restaurant_id", restaurantID, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "failed to create review")
			return
		}
		writeJSON(h.logger, w, http.StatusCreated, toReviewResponse(review))
	}
}
