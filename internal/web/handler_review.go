package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/vbonduro/restaurantinfo/internal/reviews"
)

const maxReviewFormSize = 64 * 1024

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReviewFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	in := reviews.ReviewInput{
		RestaurantID: r.PostFormValue("restaurant_id"),
		Name:         r.PostFormValue("name"),
		Rating:       r.PostFormValue("rating"),
		Comments:     r.PostFormValue("comments"),
	}

	if err := s.reviews.AddReview(r.Context(), in); err != nil {
		var verr *reviews.ValidationError
		if errors.As(err, &verr) {
			s.logger.Warn("review rejected", "restaurant_id", in.RestaurantID, "fields", verr.Fields)
			http.Error(w, "incomplete review", http.StatusBadRequest)
			return
		}
		s.logger.Error("submit review failed", "restaurant_id", in.RestaurantID, "error", err)
		http.Error(w, "failed to submit review", http.StatusBadGateway)
		return
	}

	review := in.Optimistic(s.now())
	s.logger.Info("review submitted", "restaurant_id", review.RestaurantID, "rating", review.Rating)

	// Plain form posts go back to the page; HTMX appends the returned item.
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/restaurant?id="+strconv.FormatInt(review.RestaurantID, 10), http.StatusSeeOther)
		return
	}

	s.writeHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.ReviewItem(buf, review)
	})
}
