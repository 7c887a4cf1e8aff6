package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

const restaurantColumns = `id, name, neighborhood, address, lat, lng, cuisine_type,
	photograph, photo_alt, photo_caption, operating_hours`

type RestaurantStore struct {
	db *sql.DB
}

func NewRestaurantStore(db *sql.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

// Create inserts r. A non-zero r.ID is kept so fixture ids stay stable.
func (s *RestaurantStore) Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	hours, err := json.Marshal(r.OperatingHours)
	if err != nil {
		return nil, fmt.Errorf("failed to encode operating hours: %w", err)
	}

	var id any
	if r.ID != 0 {
		id = r.ID
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurants (`+restaurantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, r.Name, r.Neighborhood, r.Address, r.LatLng.Lat, r.LatLng.Lng, r.CuisineType,
		r.Photograph, r.PhotoAlt, r.PhotoCaption, string(hours))
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, newID)
}

// GetByID returns nil, nil when no restaurant has the id.
func (s *RestaurantStore) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?
	`, id)

	r, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

func (s *RestaurantStore) List(ctx context.Context) ([]*domain.Restaurant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+restaurantColumns+` FROM restaurants ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

func (s *RestaurantStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row scanner) (*domain.Restaurant, error) {
	r := &domain.Restaurant{}
	var hours string
	err := row.Scan(&r.ID, &r.Name, &r.Neighborhood, &r.Address, &r.LatLng.Lat, &r.LatLng.Lng,
		&r.CuisineType, &r.Photograph, &r.PhotoAlt, &r.PhotoCaption, &hours)
	if err != nil {
		return nil, err
	}
	if hours != "" {
		if err := json.Unmarshal([]byte(hours), &r.OperatingHours); err != nil {
			return nil, fmt.Errorf("failed to decode operating hours for restaurant %d: %w", r.ID, err)
		}
	}
	return r, nil
}
