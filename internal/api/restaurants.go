package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/service"
)

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.catalog.ListRestaurants(r.Context())
		if err != nil {
			h.logger.Error("restaurant list fetch failed", "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "failed to list restaurants")
			return
		}
		if list == nil {
			list = []*domain.Restaurant{}
		}
		writeJSON(h.logger, w, http.StatusOK, list)
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			writeError(h.logger, w, http.StatusNotFound, "restaurant not found")
			return
		}

		restaurant, err := h.catalog.GetRestaurant(r.Context(), id)
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(h.logger, w, http.StatusNotFound, "restaurant not found")
			return
		}
		if err != nil {
			h.logger.Error("restaurant fetch failed", "restaurant_id", id, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "failed to get restaurant")
			return
		}
		writeJSON(h.logger, w, http.StatusOK, restaurant)
	}
}
