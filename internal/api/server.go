// Package api provides the HTTP API server and handlers for the chat service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chatlabs/chat-api/internal/store"
)

// API metadata published in the OpenAPI document.
const (
	apiTitle   = "Chat & Tagging API"
	apiVersion = "1.0.0"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string // CORS origins; empty allows all
	// ExposeErrorDetail adds the underlying error text to 5xx payloads.
	// Keep it off in production.
	ExposeErrorDetail bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	errs     *errorMapper
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		errs:     &errorMapper{logger: logger, exposeDetail: opts.ExposeErrorDetail},
		logger:   logger,
	}

	s.setupMiddleware(opts)

	s.api = humachi.New(s.router, newHumaConfig())
	s.errs.register()

	s.registerRoutes()

	return s
}

// newHumaConfig returns the OpenAPI config. Response bodies are served
// without the $schema link huma adds by default.
func newHumaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "CRUD over chat messages and tag suggestions."
	config.CreateHooks = nil
	return config
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

// registerRoutes registers every operation on the huma API.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerMessageRoutes()
	s.registerTagRoutes()
}
