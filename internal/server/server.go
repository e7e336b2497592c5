// Package server is the composition root: it opens the store, builds the
// services and handlers on top of it, mounts them on a chi router and runs
// the HTTP server until a shutdown signal arrives.
//
// DEPENDENCY FLOW:
//
//	config.Config → store (sqlite | postgres)
//	store → MediaService, PostService → PublicationService
//	services → handlers → routes
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/publication-scheduler/internal/config"
	"github.com/sakif/publication-scheduler/internal/handler"
	"github.com/sakif/publication-scheduler/internal/metrics"
	"github.com/sakif/publication-scheduler/internal/middleware"
	"github.com/sakif/publication-scheduler/internal/repository"
	"github.com/sakif/publication-scheduler/internal/repository/postgres"
	sqliteRepo "github.com/sakif/publication-scheduler/internal/repository/sqlite"
	"github.com/sakif/publication-scheduler/internal/service"
)

const serviceName = "publication-scheduler"

// Server owns the store handle and closes it when Start returns.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
	clock  func() time.Time
}

type Option func(*Server)

// WithClock overrides the clock the publication rules compare against.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.clock = now
	}
}

// New opens the configured store and wires every route. The caller must
// either call Start or Close.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.setupRoutes(); err != nil {
		store.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func openStore(ctx context.Context, cfg config.DBConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.URL, postgres.Options{AutoMigrate: cfg.AutoMigrate})
	case config.DriverSQLite:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return sqliteRepo.New(ctx, cfg.Path, sqliteRepo.Options{AutoMigrate: cfg.AutoMigrate})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// setupRoutes configures middleware and routes.
//
// ROUTES:
// GET    /health                 → liveness, text/plain
// GET    /ready                  → store ping
// GET    /metrics                → Prometheus exposition
// POST   /medias                 GET /medias    GET|PUT|DELETE /medias/{id}
// POST   /posts                  GET /posts     GET|PUT|DELETE /posts/{id}
// POST   /publications           GET /publications  GET|PUT|DELETE /publications/{id}
//
// MIDDLEWARE ORDER:
// RequestID → RealIP → Logger → Recoverer → Metrics → CORS → RateLimit.
// Logger sits outside Recoverer so a recovered panic is still logged as a 500.
func (s *Server) setupRoutes() error {
	m, metricsHandler, err := metrics.Setup(serviceName)
	if err != nil {
		return fmt.Errorf("setting up metrics: %w", err)
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Metrics(m))
	s.router.Use(middleware.CORS(s.config.HTTP.CORSAllowedOrigins))
	if rpm := s.config.HTTP.RateLimitRPM; rpm > 0 {
		s.router.Use(middleware.RateLimit(rpm))
	}

	mediaService := service.NewMediaService(s.store, s.logger)
	postService := service.NewPostService(s.store, s.logger)
	publicationService := service.NewPublicationService(s.store, s.store, s.store, s.logger,
		service.WithClock(s.clock))

	mediaHandler := handler.NewMediaHandler(mediaService, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	publicationHandler := handler.NewPublicationHandler(publicationService, s.logger)
	healthHandler := handler.NewHealthHandler(s.store, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Get("/ready", healthHandler.HandleReady)
	s.router.Method(http.MethodGet, "/metrics", metricsHandler)

	s.router.Route("/medias", func(r chi.Router) {
		r.Post("/", mediaHandler.HandleCreate)
		r.Get("/", mediaHandler.HandleList)
		r.Get("/{id}", mediaHandler.HandleGet)
		r.Put("/{id}", mediaHandler.HandleUpdate)
		r.Delete("/{id}", mediaHandler.HandleDelete)
	})

	s.router.Route("/posts", func(r chi.Router) {
		r.Post("/", postHandler.HandleCreate)
		r.Get("/", postHandler.HandleList)
		r.Get("/{id}", postHandler.HandleGet)
		r.Put("/{id}", postHandler.HandleUpdate)
		r.Delete("/{id}", postHandler.HandleDelete)
	})

	s.router.Route("/publications", func(r chi.Router) {
		r.Post("/", publicationHandler.HandleCreate)
		r.Get("/", publicationHandler.HandleList)
		r.Get("/{id}", publicationHandler.HandleGet)
		r.Put("/{id}", publicationHandler.HandleUpdate)
		r.Delete("/{id}", publicationHandler.HandleDelete)
	})

	return nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// within the configured shutdown timeout and closes the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTP.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.HTTP.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.HTTP.Port)),
			slog.String("driver", s.config.DB.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
