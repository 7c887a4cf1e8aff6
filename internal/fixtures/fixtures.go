// Package fixtures holds the restaurant and review data the data service
// seeds into an empty database.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

//go:embed restaurants.json
var restaurantsJSON []byte

//go:embed reviews.json
var reviewsJSON []byte

type Data struct {
	Restaurants []*domain.Restaurant
	Reviews     []domain.Review
}

type review struct {
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	Comments     string  `json:"comments"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

func Load() (*Data, error) {
	var d Data
	if err := json.Unmarshal(restaurantsJSON, &d.Restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant fixtures: %w", err)
	}

	var raw []review
	if err := json.Unmarshal(reviewsJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode review fixtures: %w", err)
	}
	for _, r := range raw {
		updated := r.UpdatedAt
		if updated == 0 {
			updated = r.CreatedAt
		}
		d.Reviews = append(d.Reviews, domain.Review{
			RestaurantID: r.RestaurantID,
			Name:         r.Name,
			Rating:       r.Rating,
			Comments:     r.Comments,
			CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
			UpdatedAt:    time.UnixMilli(updated).UTC(),
		})
	}

	return &d, nil
}
