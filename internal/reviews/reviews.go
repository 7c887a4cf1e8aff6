// Package reviews reads and submits restaurant reviews through the data
// service.
package reviews

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/httpclient"
)

type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c, now: time.Now}
}

// wireReview is the data service's JSON shape. Timestamps are epoch
// milliseconds. Numeric fields may arrive quoted when a review was stored
// straight from a form post.
type wireReview struct {
	ID           flexNumber `json:"id"`
	RestaurantID flexNumber `json:"restaurant_id"`
	Name         string     `json:"name"`
	Rating       flexNumber `json:"rating"`
	Comments     string     `json:"comments"`
	CreatedAt    int64      `json:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt"`
}

type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %s: not finite", data)
	}
	*n = flexNumber(f)
	return nil
}

// FetchByRestaurantID returns the restaurant's reviews in the order the data
// service lists them, each with a relative DisplayDate.
func (c *Client) FetchByRestaurantID(ctx context.Context, id string) ([]domain.Review, error) {
	raw, err := httpclient.GetJSON[[]wireReview](ctx, c.http, "/reviews", url.Values{"restaurant_id": {id}})
	if err != nil {
		return nil, err
	}

	now := c.now()
	out := make([]domain.Review, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toDomain(now))
	}
	return out, nil
}

func (w wireReview) toDomain(now time.Time) domain.Review {
	r := domain.Review{
		ID:           int64(w.ID),
		RestaurantID: int64(w.RestaurantID),
		Name:         w.Name,
		Rating:       float64(w.Rating),
		Comments:     w.Comments,
	}
	if w.CreatedAt > 0 {
		r.CreatedAt = time.UnixMilli(w.CreatedAt)
	}
	switch {
	case w.UpdatedAt > 0:
		r.UpdatedAt = time.UnixMilli(w.UpdatedAt)
	default:
		r.UpdatedAt = r.CreatedAt
	}
	if !r.UpdatedAt.IsZero() {
		r.DisplayDate = relativeTime(r.UpdatedAt, now)
	}
	return r
}

func relativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// AddReview validates in and posts it form-encoded. Nothing is sent when
// validation fails.
func (c *Client) AddReview(ctx context.Context, in ReviewInput) error {
	in.normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := c.http.PostForm(ctx, "/reviews", in.values()); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

// Optimistic builds the review the page appends after a successful write.
// It reflects the submitted values, not anything the data service stored.
func (in ReviewInput) Optimistic(now time.Time) domain.Review {
	in.normalize()
	id, _ := strconv.ParseInt(in.RestaurantID, 10, 64)
	rating, _ := strconv.ParseFloat(in.Rating, 64)
	return domain.Review{
		RestaurantID: id,
		Name:         in.Name,
		Rating:       rating,
		Comments:     in.Comments,
		CreatedAt:    now,
		UpdatedAt:    now,
		DisplayDate:  relativeTime(now, now),
	}
}

func (in ReviewInput) values() url.Values {
	return url.Values{
		"restaurant_id": {in.RestaurantID},
		"name":          {in.Name},
		"rating":        {in.Rating},
		"comments":      {in.Comments},
	}
}
