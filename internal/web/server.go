package web

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vbonduro/restaurantinfo/internal/domain"
	"github.com/vbonduro/restaurantinfo/internal/logging"
	"github.com/vbonduro/restaurantinfo/internal/render"
	"github.com/vbonduro/restaurantinfo/internal/reviews"
)

// restaurantFetcher is the subset of restaurants.Client the page needs.
type restaurantFetcher interface {
	FetchByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

// reviewService is the subset of reviews.Client the page needs.
type reviewService interface {
	FetchByRestaurantID(ctx context.Context, id string) ([]domain.Review, error)
	AddReview(ctx context.Context, in reviews.ReviewInput) error
}

type Server struct {
	restaurants  restaurantFetcher
	reviews      reviewService
	renderer     *render.Renderer
	imageBaseURL string
	mux          *http.ServeMux
	logger       *slog.Logger
	now          func() time.Time
}

func NewServer(restaurants restaurantFetcher, rv reviewService, renderer *render.Renderer, imageBaseURL string, logger *slog.Logger) *Server {
	s := &Server{
		restaurants:  restaurants,
		reviews:      rv,
		renderer:     renderer,
		imageBaseURL: imageBaseURL,
		mux:          http.NewServeMux(),
		logger:       logger,
		now:          time.Now,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/restaurant?id=1", http.StatusSeeOther)
	})
	s.mux.HandleFunc("GET /restaurant", s.handleRestaurantPage)
	s.mux.HandleFunc("GET /restaurant.html", s.handleRestaurantPage)
	s.mux.HandleFunc("POST /restaurant/reviews", s.handleSubmitReview)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(imgSrc string, next http.Handler) http.Handler {
	csp := "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src " + imgSrc + "; " +
		"connect-src 'self'"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", csp)
		next.ServeHTTP(w, r)
	})
}

// imageSources returns the CSP img-src list, adding the image host when
// photographs are served from another origin.
func imageSources(imageBaseURL string) string {
	src := "'self' data:"
	u, err := url.Parse(imageBaseURL)
	if err == nil && u.Scheme != "" && u.Host != "" {
		src += " " + u.Scheme + "://" + u.Host
	}
	return src
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.RequestLogger(s.logger)(securityHeaders(imageSources(s.imageBaseURL), s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting page server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// writeHTML buffers the render; a template failure becomes a 500 with nothing
// partial written.
func (s *Server) writeHTML(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		s.logger.Error("render failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}
