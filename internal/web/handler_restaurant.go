package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/httpclient"
	"github.com/vbonduro/restaurantinfo/internal/render"
	"github.com/vbonduro/restaurantinfo/internal/restaurants"
)

func (s *Server) handleRestaurantPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := &pageSession{restaurantID: strings.TrimSpace(r.URL.Query().Get("id"))}

	restaurant, err := s.restaurants.FetchByID(ctx, session.restaurantID)
	if err != nil {
		status := fetchErrorStatus(err)
		if status == http.StatusBadGateway {
			s.logger.Error("fetch restaurant failed", "restaurant_id", session.restaurantID, "error", err)
		} else {
			s.logger.Warn("restaurant unavailable", "restaurant_id", session.restaurantID, "error", err)
		}
		s.renderSession(w, status, session)
		return
	}

	// Reviews are keyed by the id the data service returned, so this branch
	// only starts once the restaurant branch has succeeded. The view model is
	// built while it is in flight.
	pending := httpclient.Defer(func() ([]domain.Review, error) {
		return s.reviews.FetchByRestaurantID(ctx, strconv.FormatInt(restaurant.ID, 10))
	})
	session.restaurant = render.NewRestaurantView(restaurant, s.imageBaseURL)

	list, err := pending.Await()
	if err != nil {
		s.logger.Error("fetch reviews failed", "restaurant_id", restaurant.ID, "error", err)
	} else {
		session.reviews = list
		session.reviewsLoaded = true
	}

	s.renderSession(w, http.StatusOK, session)
}

func (s *Server) renderSession(w http.ResponseWriter, status int, session *pageSession) {
	s.writeHTML(w, status, func(buf *bytes.Buffer) error {
		return s.renderer.Page(buf, session.view())
	})
}

// fetchErrorStatus maps a restaurant fetch failure to the page's status code.
func fetchErrorStatus(err error) int {
	switch {
	case errors.Is(err, restaurants.ErrMissingIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, restaurants.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
