// Package api serves the restaurant and review data the detail page reads.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/logging"
)

// Catalog is the subset of service.CatalogService the API requires.
type Catalog interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListReviews(ctx context.Context) ([]*domain.Review, error)
	ListReviewsByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.Review, error)
	CreateReview(ctx context.Context, restaurantID int64, name string, rating float64, comments string) (*domain.Review, error)
}

type Handler struct {
	logger   *slog.Logger
	catalog  Catalog
	validate *validator.Validate
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  *slog.Logger
	Catalog Catalog
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		catalog:  cfg.Catalog,
		validate: newValidator(),
	}
}

// newValidator reports fields by their form key.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Register mounts the data routes onto r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.healthHandler())
	r.Get("/restaurants", h.restaurantListHandler())
	r.Get("/restaurants/{id}", h.restaurantDetailHandler())
	r.Get("/reviews", h.reviewListHandler())
	r.Post("/reviews", h.reviewCreateHandler())
}

// Router returns the full middleware stack with the data routes mounted.
func (h *Handler) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(h.logger))
	router.Use(middleware.Recoverer)
	h.Register(router)
	return router
}

func (h *Handler) ListenAndServe(addr string) error {
	h.logger.Info("starting data server", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (h *Handler) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
