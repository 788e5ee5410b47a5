// Package raster paints heatmap and bubble views of a projection into PNG
// images.
//
// Both painters share one geometry: a title band across the top, a left
// gutter for ranked row labels, rotated column headers, and a cell grid.
// A supersampling factor scales every coordinate and font size uniformly,
// so higher pixel densities keep identical proportions. Output depends only
// on the projection and options, which keeps repeated renders pixel-identical.
package raster

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
)

// Base geometry in pixels, before supersampling.
const (
	DefaultCellSize    = 28.0
	DefaultLabelGutter = 220.0
	DefaultHeaderBand  = 96.0
	DefaultMargin      = 24.0

	titleFontSize  = 16.0
	labelFontSize  = 11.0
	headerFontSize = 10.0

	// Dimensions of the placeholder image for the no-data state.
	emptyWidth  = 640
	emptyHeight = 360
)

// Options controls raster geometry and pixel density.
type Options struct {
	// Supersample multiplies every coordinate and font size. Values
	// below 1 are treated as 1.
	Supersample int

	// CellSize is the square cell edge in base pixels.
	CellSize float64

	// LabelGutter reserves horizontal space for row labels.
	LabelGutter float64

	// HeaderBand reserves vertical space for the title and column headers.
	HeaderBand float64

	// Margin is the outer whitespace on all sides.
	Margin float64
}

func (o *Options) setDefaults() {
	if o.Supersample < 1 {
		o.Supersample = 1
	}
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.LabelGutter <= 0 {
		o.LabelGutter = DefaultLabelGutter
	}
	if o.HeaderBand <= 0 {
		o.HeaderBand = DefaultHeaderBand
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
}

// geometry holds the fully scaled layout for one render.
type geometry struct {
	s      float64 // supersample factor
	margin float64
	gutter float64
	header float64
	cell   float64
	rows   int
	cols   int
	width  int
	height int
}

func newGeometry(o Options, rows, cols int) geometry {
	s := float64(o.Supersample)
	g := geometry{
		s:      s,
		margin: o.Margin * s,
		gutter: o.LabelGutter * s,
		header: o.HeaderBand * s,
		cell:   o.CellSize * s,
		rows:   rows,
		cols:   cols,
	}
	g.width = int(2*g.margin + g.gutter + float64(cols)*g.cell)
	g.height = int(2*g.margin + g.header + float64(rows)*g.cell)
	return g
}

// gridLeft is the x coordinate of the first cell column.
func (g geometry) gridLeft() float64 { return g.margin + g.gutter }

// gridTop is the y coordinate of the first cell row.
func (g geometry) gridTop() float64 { return g.margin + g.header }

// drawChrome paints the title, rotated column headers, and right-aligned
// row labels common to both painters.
func drawChrome(dc *gg.Context, g geometry, p *chart.Projection) {
	dc.SetRGB255(40, 40, 40)

	dc.SetFontFace(face(titleFontSize * g.s))
	dc.DrawString(p.Title(), g.margin, g.margin+titleFontSize*g.s)

	dc.SetFontFace(face(headerFontSize * g.s))
	for j, label := range p.Labels() {
		x := g.gridLeft() + (float64(j)+0.5)*g.cell
		y := g.gridTop() - 8*g.s
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), x, y)
		dc.DrawStringAnchored(label, x, y, 0, 0.5)
		dc.Pop()
	}

	dc.SetFontFace(face(labelFontSize * g.s))
	maxLabel := g.gutter - 12*g.s
	for i, row := range p.Ranked() {
		label := truncate(dc, row.Label(), maxLabel)
		y := g.gridTop() + (float64(i)+0.5)*g.cell
		dc.DrawStringAnchored(label, g.margin+g.gutter-8*g.s, y, 1, 0.35)
	}
}

// truncate shortens s until it fits maxWidth in the current font face.
func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return "..."
}

// Placeholder renders the no-data image: zero rows or columns is a
// defined state, not a failure. Scatter and image export reuse it.
func Placeholder(title string, o Options) ([]byte, error) {
	o.setDefaults()
	s := float64(o.Supersample)
	dc := gg.NewContext(int(emptyWidth*s), int(emptyHeight*s))
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	dc.SetRGB255(40, 40, 40)
	dc.SetFontFace(face(titleFontSize * s))
	dc.DrawStringAnchored(title, emptyWidth*s/2, emptyHeight*s/2-20*s, 0.5, 0.5)

	dc.SetRGB255(140, 140, 140)
	dc.SetFontFace(face(labelFontSize * s))
	dc.DrawStringAnchored("No data available", emptyWidth*s/2, emptyHeight*s/2+10*s, 0.5, 0.5)

	return encodePNG(dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
