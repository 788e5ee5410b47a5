// Package scatter renders the rank-vs-total view of a projection as a PNG.
//
// Every ranked item becomes one dot at (rank, total), sized by the shared
// engine's dot scale and colored by the bucket of its total against the
// matrix maximum. The top-ranked items carry name annotations. Like the
// raster painters, output depends only on the projection and options.
package scatter

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/render/raster"
)

const (
	DefaultWidth  = 1100
	DefaultHeight = 600

	// annotated is how many of the top ranked items get a name label.
	annotated = 3
)

// Options controls the output size.
type Options struct {
	Width       int
	Height      int
	Supersample int
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Supersample < 1 {
		o.Supersample = 1
	}
}

// Render draws the ranked scatter for a projection.
func Render(p *chart.Projection, opts Options) ([]byte, error) {
	opts.setDefaults()
	if p.Empty() {
		return raster.Placeholder(p.Title(), raster.Options{Supersample: opts.Supersample})
	}

	ranked := p.Ranked()
	eng := p.Engine()
	maxValue := p.MaxValue()

	xs := make([]float64, 0, len(ranked))
	ys := make([]float64, 0, len(ranked))
	maxTotal := 0
	for _, r := range ranked {
		if r.Rank == 0 {
			continue // all-rows projections append unranked zero rows
		}
		xs = append(xs, float64(r.Rank))
		ys = append(ys, float64(r.Total))
		if r.Total > maxTotal {
			maxTotal = r.Total
		}
	}

	series := gochart.ContinuousSeries{
		Name:    "items",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: 0, // points only, no connecting line
			DotWidth:    4,
			DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
				return eng.DotSize(int(ys[index])) / 2
			},
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				rgb := eng.Color(eng.Bucket(int(ys[index]), maxValue))
				return drawing.Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
			},
		},
	}

	var notes []gochart.Value2
	for i := 0; i < len(ranked) && i < annotated; i++ {
		notes = append(notes, gochart.Value2{
			XValue: float64(ranked[i].Rank),
			YValue: float64(ranked[i].Total),
			Label:  ranked[i].Name,
		})
	}

	ch := gochart.Chart{
		Title:      p.Title(),
		Width:      opts.Width * opts.Supersample,
		Height:     opts.Height * opts.Supersample,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 24, Bottom: 32}},
		XAxis: gochart.XAxis{
			Name:  "Rank",
			Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(len(xs)) + 0.5},
			Ticks: rankTicks(len(xs)),
		},
		YAxis: gochart.YAxis{
			Name:  "Total",
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxTotal) * 1.1},
		},
		Series: []gochart.Series{
			series,
			gochart.AnnotationSeries{Annotations: notes},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render scatter")
	}
	return buf.Bytes(), nil
}

// rankTicks keeps the x axis to integer rank labels, thinning them once
// the ranking grows past what fits legibly.
func rankTicks(n int) []gochart.Tick {
	step := 1
	for n/step > 20 {
		step *= 2
	}
	ticks := make([]gochart.Tick, 0, n/step+1)
	for r := 1; r <= n; r += step {
		ticks = append(ticks, gochart.Tick{Value: float64(r), Label: fmt.Sprintf("%d", r)})
	}
	return ticks
}
