package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// restaurantRepository is the subset of store.RestaurantStore that CatalogService requires.
type restaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	List(ctx context.Context) ([]*domain.Restaurant, error)
	Count(ctx context.Context) (int, error)
}

// reviewRepository is the subset of store.ReviewStore that CatalogService requires.
type reviewRepository interface {
	Create(ctx context.Context, restaurantID int64, name string, rating float64, comments string, at time.Time) (*domain.Review, error)
	ListByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
}

type CatalogService struct {
	restaurants restaurantRepository
	reviews     reviewRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewCatalogService(restaurants restaurantRepository, reviews reviewRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		reviews:     reviews,
		logger:      logger,
		now:         time.Now,
	}
}

// Seed loads restaurants and reviews into an empty catalog. It reports
// whether anything was written.
func (s *CatalogService) Seed(ctx context.Context, restaurants []*domain.Restaurant, reviews []domain.Review) (bool, error) {
	n, err := s.restaurants.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.logger.Info("catalog already populated, skipping seed", "restaurants", n)
		return false, nil
	}

	for _, r := range restaurants {
		if _, err := s.restaurants.Create(ctx, r); err != nil {
			return false, fmt.Errorf("failed to seed restaurant %q: %w", r.Name, err)
		}
	}
	for _, r := range reviews {
		if _, err := s.reviews.Create(ctx, r.RestaurantID, r.Name, r.Rating, r.Comments, r.CreatedAt); err != nil {
			return false, fmt.Errorf("failed to seed review for restaurant %d: %w", r.RestaurantID, err)
		}
	}

	s.logger.Info("catalog seeded", "restaurants", len(restaurants), "reviews", len(reviews))
	return true, nil
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.restaurants.List(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRestaurantNotFound
	}
	return r, nil
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.List(ctx)
}

// ListReviewsByRestaurant returns an empty list for an unknown restaurant.
func (s *CatalogService) ListReviewsByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.Review, error) {
	return s.reviews.ListByRestaurantID(ctx, restaurantID)
}

// CreateReview stores a review for an existing restaurant.
func (s *CatalogService) CreateReview(ctx context.Context, restaurantID int64, name string, rating float64, comments string) (*domain.Review, error) {
	r, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if r == nil {
		return nil, ErrRestaurantNotFound
	}

	review, err := s.reviews.Create(ctx, restaurantID, name, rating, comments, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("review created", "review_id", review.ID, "restaurant_id", restaurantID)
	return review, nil
}
