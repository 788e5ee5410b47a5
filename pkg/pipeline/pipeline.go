// Package pipeline provides the core visualization pipeline for clinigrid.
//
// This package implements the complete fetch → project → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Retrieve and verify a pivot matrix from the configured source
//  2. Project: Rank, scale, and shape the matrix into a chart projection
//  3. Render: Generate output in various formats (xlsx, pdf, png, html, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Subject:  "patient-042",
//	    Category: "symptom",
//	    Chart:    "heatmap",
//	    Formats:  []string{"xlsx", "pdf"},
//	    Source:   src,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	workbook := result.Artifacts["xlsx"]
//
// Run individual stages:
//
//	// Fetch only
//	m, err := runner.Fetch(ctx, fetchOpts)
//
//	// Project an existing matrix
//	p, err := pipeline.Project(m, opts)
//
//	// Render an existing projection
//	artifacts, err := runner.Render(ctx, hash, p, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/clinigrid/clinigrid/pkg/cache"
	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/export"
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/pivot/source"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultCategory is the pivot category fetched when none is given.
	DefaultCategory = string(pivot.CategorySymptom)

	// DefaultChart is the default chart kind.
	DefaultChart = string(chart.KindHeatmap)

	// DefaultTheme is the default color theme.
	DefaultTheme = "heat"

	// DefaultCurve is the default scaling curve.
	DefaultCurve = string(scale.CurveLinear)

	// DefaultSupersample is the default pixel density multiplier for
	// raster output.
	DefaultSupersample = 1
)

// Format constants for output formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormat is the format rendered when none is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXLSX: true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatHTML: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Subject  string `json:"subject"`
	Category string `json:"category,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Projection options
	Chart   string `json:"chart,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Curve   string `json:"curve,omitempty"`
	AllRows bool   `json:"all_rows,omitempty"` // Rank every row instead of the top window

	// Render options
	Formats     []string  `json:"formats,omitempty"`
	Supersample int       `json:"supersample,omitempty"`
	PageWidth   float64   `json:"page_width,omitempty"`
	PageHeight  float64   `json:"page_height,omitempty"`
	OutputDir   string    `json:"output_dir,omitempty"`   // Where the CLI writes artifacts
	GeneratedAt time.Time `json:"generated_at,omitempty"` // Pinned artifact timestamp; zero means now

	// Runtime options (not serialized)
	Source source.Source `json:"-"`
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs and API responses.
	RunID string

	// Matrix is the fetched and verified pivot matrix.
	Matrix *pivot.Matrix

	// MatrixHash is the content hash of the matrix.
	MatrixHash string

	// Projection is the ranked and scaled chart projection.
	Projection *chart.Projection

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount    int // Matrix rows before ranking
	ColumnCount int // Date columns
	RankedCount int // Rows surviving the ranking window
	PageCount   int // Document pages the projection tiles into
	FetchTime   time.Duration
	ModelTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	PivotHit     bool            // Whether the fetched matrix came from cache
	ArtifactHits map[string]bool // Per-format artifact cache hits
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: xlsx, pdf, png, html, svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChart checks that a chart kind is valid.
func ValidateChart(kind string) error {
	if !chart.ValidKinds[chart.Kind(kind)] {
		return errors.New(errors.ErrCodeInvalidChart,
			"invalid chart: %q (must be one of: heatmap, bubble, scatter, table, network)", kind)
	}
	return nil
}

// ValidateTheme checks that a theme name resolves to a built-in theme.
func ValidateTheme(theme string) error {
	_, err := scale.Lookup(theme)
	return err
}

// ValidateCurve checks that a scaling curve is valid.
func ValidateCurve(curve string) error {
	if !scale.ValidCurves[scale.Curve(curve)] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid curve: %q (must be one of: linear, log)", curve)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	o.SetModelDefaults()
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for fetching and normalizes the
// category so aliases ("Symptoms", "dx") never leak into cache keys.
func (o *Options) ValidateForFetch() error {
	if err := errors.ValidateSubject(o.Subject); err != nil {
		return err
	}

	if o.Category == "" {
		o.Category = DefaultCategory
	}
	cat, err := pivot.ParseCategory(o.Category)
	if err != nil {
		return err
	}
	o.Category = string(cat)

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetModelDefaults sets default values for the projection stage.
func (o *Options) SetModelDefaults() {
	if o.Chart == "" {
		o.Chart = DefaultChart
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Curve == "" {
		o.Curve = DefaultCurve
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForModel validates and sets defaults for the projection stage.
func (o *Options) ValidateForModel() error {
	o.SetModelDefaults()
	if err := ValidateChart(o.Chart); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	return ValidateCurve(o.Curve)
}

// SetRenderDefaults sets default values for rendering. Geometry and
// supersampling are normalized here rather than in the export layer so
// equivalent option sets always produce the same artifact cache keys.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Supersample < 1 {
		o.Supersample = DefaultSupersample
	}
	if o.PageWidth <= 0 {
		o.PageWidth = export.DefaultPageWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = export.DefaultPageHeight
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForModel(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Ref returns the source reference for the configured subject and category.
func (o *Options) Ref() source.Ref {
	return source.Ref{
		Subject:  o.Subject,
		Category: pivot.Category(o.Category),
	}
}

// ChartKind returns the chart kind as its typed form.
func (o *Options) ChartKind() chart.Kind {
	return chart.Kind(o.Chart)
}

// Engine builds the scaling engine from the configured theme and curve.
// An unknown theme falls back to the default engine; validation catches
// bad names before this point on every normal path.
func (o *Options) Engine() scale.Engine {
	theme, err := scale.Lookup(o.Theme)
	if err != nil {
		return scale.Default()
	}
	return scale.New(theme, scale.Curve(o.Curve))
}

// PivotKeyOpts returns cache key options for the fetch stage.
func (o *Options) PivotKeyOpts() cache.PivotKeyOpts {
	return cache.PivotKeyOpts{
		Category: o.Category,
	}
}

// ModelKeyOpts returns cache key options for serialized chart models.
func (o *Options) ModelKeyOpts() cache.ModelKeyOpts {
	return cache.ModelKeyOpts{
		Chart:   o.Chart,
		Theme:   o.Theme,
		Curve:   o.Curve,
		AllRows: o.AllRows,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Chart:       o.Chart,
		Theme:       o.Theme,
		Curve:       o.Curve,
		AllRows:     o.AllRows,
		Supersample: o.Supersample,
		PageWidth:   o.PageWidth,
		PageHeight:  o.PageHeight,
	}
}

// exportOptions builds the export layer options from the pipeline options.
// Fine geometry (margins, row heights) stays on export defaults; the
// pipeline only steers page size, density, and the pinned timestamp.
func (o *Options) exportOptions() export.Options {
	return export.Options{
		GeneratedAt: o.GeneratedAt,
		Chart:       o.ChartKind(),
		Supersample: o.Supersample,
		PageWidth:   o.PageWidth,
		PageHeight:  o.PageHeight,
	}
}
