// Package web renders a projection as a self-contained interactive HTML page.
//
// The page embeds an ECharts view of the shared projection: the grid heatmap,
// the bubble encoding, or the ranked scatter. Ordering and values come from
// the projection untouched; bubble and scatter points are grouped into one
// series per bucket so every dot carries the exact theme hex color. The
// heatmap's continuous visual map interpolates between the same five bucket
// anchors.
package web

import (
	"bytes"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

const (
	chartWidth  = "1200px"
	chartHeight = "720px"
)

// Render produces the HTML page for one chart kind. Table and network
// kinds have no HTML encoding.
func Render(p *chart.Projection, kind chart.Kind) ([]byte, error) {
	var view components.Charter
	switch kind {
	case chart.KindHeatmap:
		view = heatmap(p)
	case chart.KindBubble:
		view = bubble(p)
	case chart.KindScatter:
		view = scatter(p)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "no html encoding for %s charts", kind)
	}

	page := components.NewPage()
	page.PageTitle = p.Title()
	page.AddCharts(view)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

// rowAxis returns the ranked row labels bottom-up, plus a mapper from
// projection row index to axis index. ECharts category axes grow upward,
// the ranking reads downward.
func rowAxis(p *chart.Projection) ([]string, func(int) int) {
	ranked := p.Ranked()
	n := len(ranked)
	labels := make([]string, n)
	for i, r := range ranked {
		labels[n-1-i] = r.Label()
	}
	return labels, func(rowIndex int) int { return n - 1 - rowIndex }
}

func titleOpts(p *chart.Projection) charts.GlobalOpts {
	t := opts.Title{Title: p.Title()}
	if p.Empty() {
		t.Subtitle = "No data available"
	}
	return charts.WithTitleOpts(t)
}

func heatmap(p *chart.Projection) *charts.HeatMap {
	hm := charts.NewHeatMap()
	yLabels, yIdx := rowAxis(p)

	ramp := make([]string, 0, 5)
	for _, b := range []scale.Bucket{scale.BucketLowest, scale.BucketLow, scale.BucketMedium, scale.BucketHigh, scale.BucketHighest} {
		ramp = append(ramp, p.Engine().Color(b).Hex())
	}

	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: p.Labels()}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(p.MaxValue()),
			InRange:    &opts.VisualMapInRange{Color: ramp},
		}),
	)

	data := make([]opts.HeatMapData, 0)
	for _, c := range p.HeatmapCells() {
		if c.Value == 0 {
			continue // empty cells stay blank, matching the raster empty color
		}
		data = append(data, opts.HeatMapData{Value: [3]interface{}{c.ColIndex, yIdx(c.RowIndex), c.Value}})
	}
	hm.SetXAxis(p.Labels()).AddSeries("count", data)
	return hm
}

func bubble(p *chart.Projection) *charts.Scatter {
	sc := charts.NewScatter()
	yLabels, yIdx := rowAxis(p)

	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: p.Labels()}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels}),
	)

	byBucket := make(map[scale.Bucket][]opts.ScatterData)
	for _, pt := range p.BubblePoints() {
		byBucket[pt.Bucket] = append(byBucket[pt.Bucket], opts.ScatterData{
			Value:      []interface{}{pt.ColIndex, yIdx(pt.RowIndex)},
			SymbolSize: int(math.Round(pt.Size)),
		})
	}

	sc.SetXAxis(p.Labels())
	for _, b := range []scale.Bucket{scale.BucketLowest, scale.BucketLow, scale.BucketMedium, scale.BucketHigh, scale.BucketHighest} {
		points, ok := byBucket[b]
		if !ok {
			continue
		}
		sc.AddSeries(b.String(), points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Engine().Color(b).Hex()}))
	}
	return sc
}

func scatter(p *chart.Projection) *charts.Scatter {
	sc := charts.NewScatter()

	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Rank"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Total"}),
	)

	eng := p.Engine()
	maxValue := p.MaxValue()
	byBucket := make(map[scale.Bucket][]opts.ScatterData)
	for _, r := range p.Ranked() {
		if r.Rank == 0 {
			continue
		}
		b := eng.Bucket(r.Total, maxValue)
		byBucket[b] = append(byBucket[b], opts.ScatterData{
			Name:       r.Name,
			Value:      []interface{}{r.Rank, r.Total},
			SymbolSize: int(math.Round(eng.DotSize(r.Total))),
		})
	}

	for _, b := range []scale.Bucket{scale.BucketLowest, scale.BucketLow, scale.BucketMedium, scale.BucketHigh, scale.BucketHighest} {
		points, ok := byBucket[b]
		if !ok {
			continue
		}
		sc.AddSeries(b.String(), points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: eng.Color(b).Hex()}))
	}
	return sc
}
