package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/courtside/internal/auth"
	"github.com/Clark-Hu/courtside/internal/checkout"
	"github.com/Clark-Hu/courtside/internal/config"
	"github.com/Clark-Hu/courtside/internal/metrics"
	"github.com/Clark-Hu/courtside/internal/repository"
	"github.com/Clark-Hu/courtside/internal/views"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps groups the collaborators the server is built from.
type Deps struct {
	Store    HealthChecker
	Repo     *repository.Repository
	Checkout checkout.Client
	Verifier *auth.Verifier
	Metrics  *metrics.Metrics
	Logger   logrus.FieldLogger
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    HealthChecker
	repo     *repository.Repository
	views    *views.Service
	checkout checkout.Client
	plans    checkout.Catalog
	verifier *auth.Verifier
	metrics  *metrics.Metrics
	logger   logrus.FieldLogger
	now      func() time.Time
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.New(nil)
	}

	s := &Server{
		cfg:      cfg,
		store:    deps.Store,
		repo:     deps.Repo,
		views:    views.NewService(deps.Repo),
		checkout: deps.Checkout,
		plans:    checkout.NewCatalog(cfg.PriceIDTier1, cfg.PriceIDTier2),
		verifier: deps.Verifier,
		metrics:  m,
		logger:   logger.WithField("component", "http"),
		now:      time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)
	s.router = r
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/venues", func(r chi.Router) {
		r.Get("/", s.handleListVenues)
		r.With(s.requireIdentity).Post("/", s.handleCreateVenue)
		r.Route("/{venueID}", func(r chi.Router) {
			r.Get("/", s.handleGetVenue)
			r.With(s.requireIdentity).Put("/", s.handleUpdateVenue)
			r.With(s.requireIdentity).Delete("/", s.handleDeleteVenue)
		})
	})
	s.router.Route("/courts/{courtID}", func(r chi.Router) {
		r.Get("/", s.handleGetCourt)
		r.With(s.requireIdentity).Post("/ratings", s.handleCreateRating)
	})
	s.router.Route("/me", func(r chi.Router) {
		r.Use(s.requireIdentity)
		r.Get("/profile", s.handleGetProfile)
		r.Get("/ratings", s.handleListMyRatings)
		r.Delete("/ratings/{ratingID}", s.handleDeleteMyRating)
		r.Get("/venues", s.handleListMyVenues)
	})
	s.router.Get("/plans", s.handleListPlans)
	s.router.With(s.requireIdentity).Post("/checkout", s.handleCheckout)
}

// ServeHTTP exposes the router so the server can be mounted or tested directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start runs the HTTP server until ctx is cancelled or listening fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpSrv.Addr).Info("http server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.HealthCheck(ctx); err != nil {
			s.logger.WithError(err).Warn("health check failed")
			s.respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable")
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}
