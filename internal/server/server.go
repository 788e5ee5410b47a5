// Package server exposes the visualization pipeline over HTTP.
//
// The server shares the Runner with the CLI, so every route benefits from
// the same pivot, model, and artifact caching. Routes are read-only: the
// API fetches, projects, and renders but never mutates source data.
//
// # Routes
//
//   - GET /healthz                  liveness probe with build info
//   - GET /api/pivot                fetched pivot matrix as JSON
//   - GET /api/model                serialized chart model as JSON
//   - GET /api/chart/{kind}.png     rendered chart image
//   - GET /api/export/{format}      artifact download with canonical name
//
// Query parameters mirror the CLI flags: subject, category, chart, theme,
// curve, all_rows, refresh.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/pivot/source"
)

// Server handles HTTP requests against a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	source   source.Source
	logger   *log.Logger
	defaults pipeline.Options
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and error logging.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithDefaults sets the options requests start from before query
// parameters are applied. Used to carry config file defaults like the
// theme into API responses.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) {
		s.defaults = opts
	}
}

// New creates a server around the given runner and pivot source.
func New(runner *pipeline.Runner, src source.Source, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		source: src,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/pivot", s.handlePivot)
		r.Get("/model", s.handleModel)
		r.Get("/chart/{kind}.png", s.handleChart)
		r.Get("/export/{format}", s.handleExport)
	})
	return r
}
