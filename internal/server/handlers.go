package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinigrid/clinigrid/pkg/buildinfo"
	"github.com/clinigrid/clinigrid/pkg/export"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// handleHealth reports liveness and build info.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handlePivot returns the fetched pivot matrix as JSON.
func (s *Server) handlePivot(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m, hit, err := s.runner.FetchWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(hit))
	s.writeJSON(w, r, http.StatusOK, m)
}

// handleModel returns the serialized chart model. The response bytes come
// from the same cache tier that backs json artifacts.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m, _, err := s.runner.FetchWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := pipeline.Project(m, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, hit, err := s.runner.ModelWithCacheInfo(r.Context(), pipeline.MatrixHash(m), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(hit))
	s.writeRaw(w, r, "application/json; charset=utf-8", data)
}

// handleChart renders the chart named in the URL as a PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if err := pipeline.ValidateChart(kind); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.optionsFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Chart = kind
	opts.Formats = []string{pipeline.FormatPNG}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.ArtifactHits[pipeline.FormatPNG]))
	s.writeRaw(w, r, "image/png", result.Artifacts[pipeline.FormatPNG])
}

// handleExport streams an artifact as a download under its canonical name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.optionsFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := export.ArtifactName(format, opts.Subject, pivot.Category(opts.Category), opts.GeneratedAt)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.ArtifactHits[format]))
	s.writeRaw(w, r, contentType(format), result.Artifacts[format])
}

// optionsFromRequest merges query parameters over the server defaults.
func (s *Server) optionsFromRequest(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	if v := q.Get("subject"); v != "" {
		opts.Subject = v
	}
	if v := q.Get("category"); v != "" {
		opts.Category = v
	}
	if v := q.Get("chart"); v != "" {
		opts.Chart = v
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	if v := q.Get("curve"); v != "" {
		opts.Curve = v
	}
	opts.AllRows = opts.AllRows || boolParam(q.Get("all_rows"))
	opts.Refresh = boolParam(q.Get("refresh"))

	opts.Source = s.source
	opts.Logger = s.logger
	opts.GeneratedAt = time.Now().UTC()

	if err := opts.ValidateForFetch(); err != nil {
		return opts, err
	}
	return opts, nil
}

// boolParam parses query flag values like "1" and "true".
func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// contentType maps artifact formats to MIME types.
func contentType(format string) string {
	switch format {
	case pipeline.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatHTML:
		return "text/html; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	case pipeline.FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
