package raster

import (
	"github.com/fogleman/gg"

	"github.com/clinigrid/clinigrid/pkg/chart"
)

// Bubble paints the dot encoding: one bucket-colored circle per non-zero
// cell, diameter from the shared engine's dot scale. Zero cells leave the
// faint row guide visible and nothing else.
func Bubble(p *chart.Projection, opts Options) ([]byte, error) {
	opts.setDefaults()
	if p.Empty() {
		return Placeholder(p.Title(), opts)
	}

	g := newGeometry(opts, len(p.Ranked()), len(p.Columns()))
	dc := gg.NewContext(g.width, g.height)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	dc.SetRGB255(235, 235, 235)
	for i := range p.Ranked() {
		y := g.gridTop() + (float64(i)+0.5)*g.cell
		dc.DrawLine(g.gridLeft(), y, g.gridLeft()+float64(g.cols)*g.cell, y)
		dc.SetLineWidth(g.s)
		dc.Stroke()
	}

	eng := p.Engine()
	for _, pt := range p.BubblePoints() {
		cx := g.gridLeft() + (float64(pt.ColIndex)+0.5)*g.cell
		cy := g.gridTop() + (float64(pt.RowIndex)+0.5)*g.cell
		dc.SetColor(eng.Color(pt.Bucket).RGBA())
		dc.DrawCircle(cx, cy, pt.Size*g.s/2)
		dc.Fill()
	}

	drawChrome(dc, g, p)
	return encodePNG(dc)
}
