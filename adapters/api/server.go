package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"statbook/internal"
	"statbook/internal/config"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

// Server exposes the frequency table and the hypothesis tests over HTTP
type Server struct {
	router       *chi.Mux
	alpha        float64
	language     language.Tag
	maxBodyBytes int64
	logger       *internal.Logger
}

// NewServer creates the HTTP API from the loaded configuration
func NewServer(cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:       chi.NewRouter(),
		alpha:        cfg.Analysis.Alpha,
		language:     cfg.Analysis.Language,
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/frequency", s.handleFrequency)
		r.Get("/tests", s.handleListTests)
		r.Post("/tests/{test}", s.handleTest)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestID tags every request and response with an identifier
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the identifier assigned to the request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
