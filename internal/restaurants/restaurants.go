// Package restaurants reads restaurant records from the data service.
package restaurants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/httpclient"
)

var (
	// ErrMissingIdentifier means the page was requested without an id.
	ErrMissingIdentifier = errors.New("no restaurant id in request")
	// ErrNotFound means the id is well formed but names no restaurant.
	ErrNotFound = errors.New("restaurant not found")
)

type Client struct {
	http *httpclient.Client
}

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// FetchByID returns the restaurant identified by id. It issues no request when
// id is blank.
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingIdentifier
	}

	data, err := c.http.Do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, nil)
	if err != nil {
		var reqErr *httpclient.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}

	var r *domain.Restaurant
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant %s: %w", id, err)
	}
	if r == nil || r.ID == 0 {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return r, nil
}
