package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/vbonduro/restaurantinfo/internal/api"
	"github.com/vbonduro/restaurantinfo/internal/db"
	"github.com/vbonduro/restaurantinfo/internal/fixtures"
	"github.com/vbonduro/restaurantinfo/internal/httpclient"
	"github.com/vbonduro/restaurantinfo/internal/render"
	"github.com/vbonduro/restaurantinfo/internal/render/templates"
	"github.com/vbonduro/restaurantinfo/internal/restaurants"
	"github.com/vbonduro/restaurantinfo/internal/reviews"
	"github.com/vbonduro/restaurantinfo/internal/service"
	"github.com/vbonduro/restaurantinfo/internal/store"
	"github.com/vbonduro/restaurantinfo/internal/web"
)

// newStack starts the data service on a seeded in-memory database and a page
// server pointed at it. It returns the page server.
func newStack(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.OpenForTesting()
	if err != nil {
		t.Fatalf("OpenForTesting: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := service.NewCatalogService(store.NewRestaurantStore(database), store.NewReviewStore(database), logger)

	data, err := fixtures.Load()
	if err != nil {
		t.Fatalf("fixtures.Load: %v", err)
	}
	if _, err := catalog.Seed(context.Background(), data.Restaurants, data.Reviews); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	apiSrv := httptest.NewServer(api.NewHandler(api.Config{Logger: logger, Catalog: catalog}).Router())
	t.Cleanup(apiSrv.Close)

	renderer, err := render.New(templates.FS)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	client := httpclient.New(apiSrv.URL, nil)
	pageSrv := httptest.NewServer(web.NewServer(
		restaurants.NewClient(client),
		reviews.NewClient(client),
		renderer,
		"/img",
		logger,
	))
	t.Cleanup(pageSrv.Close)
	return pageSrv
}

func getBody(t *testing.T, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

// TestIntegration_RestaurantPage verifies that id 1 renders the fixture
// restaurant with its name and address unchanged.
func TestIntegration_RestaurantPage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newStack(t)
	status, body := getBody(t, srv.URL+"/restaurant?id=1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	for _, want := range []string{
		"Mission Chinese Food",
		"171 E Broadway, New York, NY 10002",
		`id="reviews-list"`,
		"/img/1-small_2x.jpg",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("response body does not contain %q", want)
		}
	}
}

// TestIntegration_UnknownRestaurant verifies that an id the data service does
// not know returns 404.
func TestIntegration_UnknownRestaurant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newStack(t)
	status, body := getBody(t, srv.URL+"/restaurant?id=4040")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", status, body)
	}
}

// TestIntegration_SubmitReview posts a review through the page server and
// checks that a fresh page load lists it.
func TestIntegration_SubmitReview(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newStack(t)
	form := url.Values{
		"restaurant_id": {"1"},
		"name":          {"Integration Reviewer"},
		"rating":        {"3.5"},
		"comments":      {"Came for the noodles, stayed for the dumplings."},
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/restaurant/reviews", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /restaurant/reviews: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	fragment, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, fragment)
	}
	if strings.Count(string(fragment), "<li") != 1 {
		t.Errorf("expected exactly one list item, got:\n%s", fragment)
	}

	_, body := getBody(t, srv.URL+"/restaurant?id=1")
	if !strings.Contains(body, "Integration Reviewer") {
		t.Errorf("reloaded page does not list the submitted review")
	}
}
