// Package pkg provides the core libraries for Clinigrid matrix visualization.
//
// # Overview
//
// Clinigrid turns clinical pivot matrices (item × date occurrence counts)
// into ranked, color-scaled visualizations and paginated exports. The pkg
// directory is organized into five main areas:
//
//  1. [pivot] - Domain data (matrix decoding, verification, sources)
//  2. [chart] - The shared render model (ranking, scaling, projection)
//  3. [render] - Visual encodings (raster, scatter, network, web)
//  4. [export] - Paginated artifacts (spreadsheets, documents, images)
//  5. [pipeline] - Orchestration (fetch → project → render) with caching
//
// # Architecture
//
// The typical data flow through Clinigrid:
//
//	Pivot Source (file/HTTP/MongoDB)
//	         ↓
//	    [pivot] package (decode + verify the matrix)
//	         ↓
//	    [chart] package (rank rows, bucket values, project)
//	         ↓
//	    [render] / [export] packages (encode + paginate)
//	         ↓
//	    XLSX/PDF/PNG/SVG/HTML/DOT/JSON output
//
// # Quick Start
//
// Fetch a pivot and render a heatmap:
//
//	import (
//	    "context"
//	    "github.com/clinigrid/clinigrid/pkg/pipeline"
//	    "github.com/clinigrid/clinigrid/pkg/pivot/source"
//	)
//
//	src := source.NewFileSource("./data")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Subject: "patient-042",
//	    Formats: []string{"png", "xlsx"},
//	    Source:  src,
//	})
//
// # Main Packages
//
// ## Domain Data
//
// [pivot] - The verified occurrence matrix and its category vocabulary.
// Decode runs integrity checks on every payload, so downstream stages
// never see rows, columns, and cells that disagree.
//
// [pivot/source] - Pivot fetching from JSON files, HTTP endpoints, and
// MongoDB collections behind one Source interface.
//
// [dates] - The MM/DD/YY column label convention: parsing, chronological
// sorting, and display forms.
//
// ## Render Model
//
// [rank] - Row ordering by total occurrences with deterministic
// tie-breaking. All-zero rows are excluded unless a complete listing is
// requested.
//
// [scale] - Value-to-color bucketing with linear and log curves and the
// built-in themes (heat, viridis, ocean, slate).
//
// [chart] - The shared projection every encoding consumes: verified
// matrix, chronological columns, single ranking, single scale engine.
//
// [tile] - Column pagination for page-constrained exports.
//
// ## Visualization
//
// [render/raster] - Heatmap and bubble grids as PNG pixels, with
// supersampling for print fidelity.
//
// [render/scatter] - The rank-vs-total overview chart.
//
// [render/cooccur] - Co-occurrence networks as DOT, SVG, or PNG via
// Graphviz.
//
// [render/web] - Self-contained interactive HTML pages.
//
// ## Export
//
// [export] - Paginated XLSX workbooks, PDF documents, and standalone
// images under canonical artifact names.
//
// [pdf] - Low-level PDF page composition used by the document exporter.
//
// ## Infrastructure
//
// [pipeline] - The fetch → project → render orchestration used by CLI and
// server. Three cache tiers (pivot, model, artifact) keyed on
// content-determining options.
//
// [cache] - File, Redis, and null cache backends behind one interface.
//
// [session] - Saved run state so repeat commands can omit the subject.
//
// [httputil] - Cached, retrying HTTP client helpers for remote sources.
//
// [observability] - Hook points for cache, source, and pipeline events.
//
// [errors] - Coded errors with user-facing messages shared by CLI exit
// paths and HTTP status mapping.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/chart/...    # Specific package
//	go test -run Example       # Examples only
//
// [pivot]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/pivot
// [pivot/source]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/pivot/source
// [dates]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/dates
// [rank]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/rank
// [scale]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/scale
// [chart]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/chart
// [tile]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/tile
// [render]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/render
// [render/raster]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/render/raster
// [render/scatter]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/render/scatter
// [render/cooccur]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/render/cooccur
// [render/web]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/render/web
// [export]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/export
// [pdf]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/pdf
// [pipeline]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/cache
// [session]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/session
// [httputil]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/clinigrid/clinigrid/pkg/errors
package pkg
