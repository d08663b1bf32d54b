package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/config"
	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/service"
	"github.com/ratehub/ratehub/internal/store"
)

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Auth    service.AuthService
	Stores  service.StoreService
	Ratings service.RatingService
	Stats   service.StatsService
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	store   *store.Store
	svcs    Services
	tokens  auth.Tokens
	logger  *zap.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, svcs Services, tokens auth.Tokens, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		svcs:   svcs,
		tokens: tokens,
		logger: logger,
		router: r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Post("/auth/signup", s.handleSignUp)
	s.router.Post("/auth/signin", s.handleSignIn)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(s.tokens))

		r.Get("/auth/profile", s.handleProfile)
		r.Patch("/auth/password", s.handleUpdatePassword)

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", s.handleListStores)
			r.With(auth.RequireRole(domain.RoleStoreOwner)).Get("/me", s.handleMyStore)
			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", s.handleGetStore)
				r.Delete("/", s.handleDeleteStore)
				r.Post("/ratings", s.handleSubmitRating)
				r.Get("/ratings", s.handleListStoreRatings)
				r.Get("/ratings/average", s.handleStoreAverage)
				r.Get("/ratings/total", s.handleStoreTotal)
				r.Get("/ratings/me", s.handleMyRating)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(domain.RoleAdmin))
			r.Get("/users", s.handleListUsers)
			r.Post("/users", s.handleCreateUser)
			r.Get("/stats", s.handlePlatformStats)
		})
	})
}

// Start boots the HTTP server asynchronously.
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

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
