// Package web provides the HTTP API for the lawyer directory.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/lawdir/internal/config"
	"github.com/JonMunkholm/lawdir/internal/core"
	"github.com/JonMunkholm/lawdir/internal/web/middleware"
)

// Server is the HTTP server for the directory API.
type Server struct {
	service   *core.Service
	cfg       *config.Config
	router    *chi.Mux
	server    *http.Server
	validator *requestValidator

	general *middleware.RateLimiter
	imports *middleware.RateLimiter
	stop    context.CancelFunc
}

// NewServer creates a Server. Rate limiter sweepers run until Shutdown.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	ctx, stop := context.WithCancel(context.Background())
	s := &Server{
		service:   service,
		cfg:       cfg,
		router:    chi.NewRouter(),
		validator: newRequestValidator(),
		stop:      stop,
	}
	if cfg.Rate.Enabled {
		s.general = middleware.NewRateLimiter("general", cfg.Rate.RequestsPerMinute)
		s.imports = middleware.NewRateLimiter("import", cfg.Rate.ImportLimit)
		go s.general.Run(ctx, time.Minute)
		go s.imports.Run(ctx, time.Minute)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(middleware.CORS(s.cfg.Security.CORSOrigins))

	if s.general != nil {
		s.router.Use(s.general.Middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	auth := middleware.APIKeyAuth(s.cfg.Security.RequireAPIKey, s.cfg.Security.APIKeys)

	s.router.Route("/api", func(r chi.Router) {
		// Directory reads
		r.Get("/lawyers", s.handleListLawyers)
		r.Get("/lawyers/{id}", s.handleGetLawyer)
		r.Get("/practice-areas", s.handlePracticeAreas)

		// Files out
		r.Get("/export", s.handleExport)
		r.Get("/template", s.handleTemplate)

		r.Get("/import/status", s.handleImportStatus)

		// Everything that changes the directory needs a key when keys are enforced
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/lawyers", s.handleCreateLawyer)
			r.Patch("/lawyers/{id}", s.handlePatchLawyer)
			r.Delete("/lawyers/{id}", s.handleDeleteLawyer)
			r.Post("/lawyers/bulk-delete", s.handleBulkDelete)

			r.Post("/sync/pull", s.handleSyncPull)
			r.Post("/sync/push", s.handleSyncPush)

			r.Group(func(r chi.Router) {
				if s.imports != nil {
					r.Use(s.imports.Middleware)
				}
				r.Post("/import/validate", s.handleValidateImport)
				r.Post("/import", s.handleImport)
				r.Post("/import/bulk/preview", s.handlePreviewBulk)
				r.Post("/import/bulk", s.handleImportBulk)
			})
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"records": s.service.Count(),
		"sync":    s.service.SyncEnabled(),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if csp {
				// JSON and file downloads only
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}
