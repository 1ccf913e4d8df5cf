// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/v1/defaults
//	POST /api/v1/layout               MIDI body → layout JSON
//	POST /api/v1/render/{format}      MIDI body → svg, png, pdf or json
//
// Layout and render options are passed as query parameters named like the
// JSON keys of pipeline.Options (stretch=12&join_style=diagonal&notes=40,42).
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds uploaded MIDI files.
const DefaultMaxBodyBytes = 8 << 20

// Server routes API requests to a pipeline runner.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	maxBodyBytes int64
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger, maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
