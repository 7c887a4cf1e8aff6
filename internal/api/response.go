package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(logger, w, status, map[string]string{"error": msg})
}

// reviewResponse is the review wire format: timestamps in epoch milliseconds.
type reviewResponse struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	Comments     string  `json:"comments"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:           r.ID,
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Rating:       r.Rating,
		Comments:     r.Comments,
		CreatedAt:    r.CreatedAt.UnixMilli(),
		UpdatedAt:    r.UpdatedAt.UnixMilli(),
	}
}

func toReviewResponses(reviews []*domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}
