package export

import (
	"time"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

// Document page geometry in points (1 point = 1/72 inch). The defaults are
// US Letter landscape with room for headers and a readable grid; capacities
// are always derived from the geometry, never fixed per data type.
const (
	DefaultPageWidth   = 792.0
	DefaultPageHeight  = 612.0
	DefaultMargin      = 36.0
	DefaultHeaderBand  = 90.0
	DefaultRowHeight   = 18.0
	DefaultColumnWidth = 54.0
	DefaultLabelGutter = 170.0
)

// Options configures the export renderers.
type Options struct {
	// GeneratedAt pins every embedded timestamp: sheet properties, PDF
	// metadata, and page headers. Identical inputs with the same
	// GeneratedAt produce byte-identical artifacts. Zero means now.
	GeneratedAt time.Time

	// Chart selects the view rendered by Image: heatmap, bubble, or
	// scatter.
	Chart chart.Kind

	// Supersample is the pixel density multiplier for Image.
	Supersample int

	// Document page geometry in points.
	PageWidth   float64
	PageHeight  float64
	Margin      float64
	HeaderBand  float64
	RowHeight   float64
	ColumnWidth float64
	LabelGutter float64

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent, so callers may validate defensively before each export.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	if o.Chart == "" {
		o.Chart = chart.KindHeatmap
	}
	if !chart.ValidKinds[o.Chart] {
		return errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q", o.Chart)
	}
	if o.Supersample < 1 {
		o.Supersample = 1
	}

	if o.PageWidth <= 0 {
		o.PageWidth = DefaultPageWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = DefaultPageHeight
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.HeaderBand <= 0 {
		o.HeaderBand = DefaultHeaderBand
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = DefaultColumnWidth
	}
	if o.LabelGutter <= 0 {
		o.LabelGutter = DefaultLabelGutter
	}

	if o.PageWidth <= 2*o.Margin+o.LabelGutter {
		return errors.New(errors.ErrCodeInvalidInput,
			"page width %.0fpt leaves no room for value columns", o.PageWidth)
	}
	if o.PageHeight <= 2*o.Margin+o.HeaderBand {
		return errors.New(errors.ErrCodeInvalidInput,
			"page height %.0fpt leaves no room for grid rows", o.PageHeight)
	}

	o.validated = true
	return nil
}
