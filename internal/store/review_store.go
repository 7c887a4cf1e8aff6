package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

const reviewColumns = `id, restaurant_id, name, rating, comments, created_at, updated_at`

type ReviewStore struct {
	db *sql.DB
}

func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create stores a review. Timestamps are kept as epoch milliseconds.
func (s *ReviewStore) Create(ctx context.Context, restaurantID int64, name string, rating float64, comments string, at time.Time) (*domain.Review, error) {
	ms := at.UnixMilli()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (restaurant_id, name, rating, comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, restaurantID, name, rating, comments, ms, ms)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ReviewStore) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews WHERE id = ?
	`, id)

	review, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (s *ReviewStore) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]*domain.Review, error) {
	return s.query(ctx, `
		SELECT `+reviewColumns+` FROM reviews WHERE restaurant_id = ? ORDER BY created_at ASC, id ASC
	`, restaurantID)
}

func (s *ReviewStore) List(ctx context.Context) ([]*domain.Review, error) {
	return s.query(ctx, `
		SELECT `+reviewColumns+` FROM reviews ORDER BY created_at ASC, id ASC
	`)
}

func (s *ReviewStore) query(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func scanReview(row scanner) (*domain.Review, error) {
	r := &domain.Review{}
	var created, updated int64
	if err := row.Scan(&r.ID, &r.RestaurantID, &r.Name, &r.Rating, &r.Comments, &created, &updated); err != nil {
		return nil, err
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	r.UpdatedAt = time.UnixMilli(updated).UTC()
	return r, nil
}
