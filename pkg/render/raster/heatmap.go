package raster

import (
	"github.com/fogleman/gg"

	"github.com/clinigrid/clinigrid/pkg/chart"
)

// Heatmap paints the grid encoding: one bucket-colored square per
// (ranked row × column) cell, zero cells included in the empty color.
func Heatmap(p *chart.Projection, opts Options) ([]byte, error) {
	opts.setDefaults()
	if p.Empty() {
		return Placeholder(p.Title(), opts)
	}

	g := newGeometry(opts, len(p.Ranked()), len(p.Columns()))
	dc := gg.NewContext(g.width, g.height)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	eng := p.Engine()
	gap := g.s // hairline between cells
	for _, c := range p.HeatmapCells() {
		x := g.gridLeft() + float64(c.ColIndex)*g.cell
		y := g.gridTop() + float64(c.RowIndex)*g.cell
		dc.SetColor(eng.Color(c.Bucket).RGBA())
		dc.DrawRectangle(x+gap, y+gap, g.cell-2*gap, g.cell-2*gap)
		dc.Fill()
	}

	drawChrome(dc, g, p)
	return encodePNG(dc)
}
