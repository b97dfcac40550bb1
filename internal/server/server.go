// Package server wires the application together: router, middleware,
// handlers, and the dependency chain underneath them. It is the
// composition root — every dependency is constructed here or in main and
// injected downward; nothing reaches for globals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/athlete-platform/internal/auth"
	"github.com/sakif/athlete-platform/internal/blob"
	"github.com/sakif/athlete-platform/internal/handler"
	"github.com/sakif/athlete-platform/internal/middleware"
	sqliteRepo "github.com/sakif/athlete-platform/internal/repository/sqlite"
	"github.com/sakif/athlete-platform/internal/service"
)

// Config holds server configuration, loaded once at startup in main and
// read-only afterwards.
type Config struct {
	Port      int
	DBPath    string        // SQLite database file, or ":memory:"
	UploadDir string        // local photo blob directory, served at /uploads/
	JWTSecret string        // HMAC signing secret; the server refuses to start without one
	TokenTTL  time.Duration // bearer token lifetime
	Env       string        // "development" or "production"
}

// Server owns the router and the resources behind it. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
// sqlite.DB → services → handlers → routes. It fails (rather than limping
// along) if the database can't be opened or the JWT secret is unusable.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Router exposes the assembled handler, mainly for HTTP-level tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start.
// Tests use this; Start handles it itself.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware, builds the handlers, and maps routes.
//
// Route map:
//
//	GET    /                            health check
//	GET    /uploads/*                   photo blobs
//	POST   /auth/register               register (201, token issued)
//	POST   /auth/login                  login (token issued)
//	GET    /auth/me              [auth] own profile
//	GET    /athletes                    list all
//	GET    /athletes/stats              platform totals
//	GET    /athletes/{id}               public profile
//	PUT    /athletes/profile     [auth] update own profile
//	POST   /athletes/videos      [auth] append video link
//	DELETE /athletes/videos/{id} [auth] remove video link
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	blobs, err := blob.NewLocalStore(s.config.UploadDir, "/uploads")
	if err != nil {
		return fmt.Errorf("creating blob store: %w", err)
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	athleteService := service.NewAthleteService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, blobs, s.logger)
	athleteHandler := handler.NewAthleteHandler(athleteService, blobs, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Get("/", s.handleHealth)

	fileServer := http.FileServer(http.Dir(s.config.UploadDir))
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.With(requireAuth).Get("/me", authHandler.HandleMe)
	})

	s.router.Route("/athletes", func(r chi.Router) {
		r.Get("/", athleteHandler.HandleList)
		r.Get("/stats", athleteHandler.HandleStats)
		r.Get("/{id}", athleteHandler.HandleGetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Put("/profile", athleteHandler.HandleUpdateProfile)
			r.Post("/videos", athleteHandler.HandleAddVideo)
			r.Delete("/videos/{videoId}", athleteHandler.HandleRemoveVideo)
		})
	})

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"message":"Athlete Platform API is running","environment":%q}`, s.config.Env)
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("env", s.config.Env),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
