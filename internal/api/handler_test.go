package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/restaurantinfo/internal/db"
	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/fixtures"
	"github.com/vbonduro/restaurantinfo/internal/service"
	"github.com/vbonduro/restaurantinfo/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := service.NewCatalogService(store.NewRestaurantStore(d), store.NewReviewStore(d), logger)

	data, err := fixtures.Load()
	require.NoError(t, err)
	_, err = catalog.Seed(context.Background(), data.Restaurants, data.Reviews)
	require.NoError(t, err)

	return NewHandler(Config{Logger: logger, Catalog: catalog}).Router()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, h, req)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRestaurantList(t *testing.T) {
	rec := do(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/restaurants", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list []domain.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 10)
}

func TestRestaurantDetail(t *testing.T) {
	rec := do(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/restaurants/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var r domain.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, "Mission Chinese Food", r.Name)
	assert.Equal(t, "171 E Broadway, New York, NY 10002", r.Address)
	require.Len(t, r.OperatingHours, 7)
	assert.Equal(t, "Monday", r.OperatingHours[0].Day)
	assert.Contains(t, rec.Body.String(), `"operating_hours":{"Monday":`)
}

func TestRestaurantDetailNotFound(t *testing.T) {
	h := newTestRouter(t)
	for _, path := range []string{"/restaurants/999", "/restaurants/abc"} {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"restaurant not found"}`, rec.Body.String())
	}
}

func TestReviewList(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/reviews?restaurant_id=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var byRestaurant []reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byRestaurant))
	require.NotEmpty(t, byRestaurant)
	for _, r := range byRestaurant {
		assert.Equal(t, int64(1), r.RestaurantID)
		assert.NotZero(t, r.CreatedAt)
		assert.NotZero(t, r.UpdatedAt)
	}

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/reviews", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var all []reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Greater(t, len(all), len(byRestaurant))
}

func TestReviewListUnknownRestaurantIsEmptyArray(t *testing.T) {
	rec := do(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/reviews?restaurant_id=999", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestReviewListInvalidRestaurantID(t *testing.T) {
	rec := do(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/reviews?restaurant_id=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewCreate(t *testing.T) {
	h := newTestRouter(t)

	rec := postForm(t, h, url.Values{
		"restaurant_id": {"1"},
		"name":          {"Ana"},
		"rating":        {"4.5"},
		"comments":      {"Great dumplings."},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.RestaurantID)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, 4.5, created.Rating)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/reviews?restaurant_id=1", nil))
	var list []reviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, "Ana", list[len(list)-1].Name)
}

func TestReviewCreateMissingField(t *testing.T) {
	tests := []struct {
		field   string
		wantMsg string
	}{
		{field: "restaurant_id", wantMsg: "missing or invalid field: restaurant_id"},
		{field: "name", wantMsg: "missing or invalid field: name"},
		{field: "rating", wantMsg: "missing or invalid field: rating"},
		{field: "comments", wantMsg: "missing or invalid field: comments"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := url.Values{
				"restaurant_id": {"1"},
				"name":          {"Ana"},
				"rating":        {"4"},
				"comments":      {"Fine."},
			}
			form.Del(tt.field)

			rec := postForm(t, newTestRouter(t), form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestReviewCreateRatingOutOfRange(t *testing.T) {
	rec := postForm(t, newTestRouter(t), url.Values{
		"restaurant_id": {"1"},
		"name":          {"Ana"},
		"rating":        {"7"},
		"comments":      {"Too good."},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewCreateRatingNotHalfStep(t *testing.T) {
	h := newTestRouter(t)
	for _, rating := range []string{"4.3", "0.25", "NaN"} {
		rec := postForm(t, h, url.Values{
			"restaurant_id": {"1"},
			"name":          {"Ana"},
			"rating":        {rating},
			"comments":      {"Almost."},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, rating)
	}

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/reviews?restaurant_id=1", nil))
	assert.NotContains(t, rec.Body.String(), "Almost.")
}

func TestReviewCreateUnknownRestaurant(t *testing.T) {
	rec := postForm(t, newTestRouter(t), url.Values{
		"restaurant_id": {"999"},
		"name":          {"Ana"},
		"rating":        {"3"},
		"comments":      {"Where?"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"restaurant not found"}`, rec.Body.String())
}
