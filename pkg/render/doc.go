// Package render groups the visual encodings of a projection.
//
// # Overview
//
// Every renderer consumes the shared [chart.Projection] and never computes
// its own ordering, bucketing, or sizing. The subpackages cover:
//
//   - [raster]: heatmap and bubble grids as PNG pixels
//   - [scatter]: the rank-vs-total overview as PNG
//   - [cooccur]: the co-occurrence network as DOT, SVG, or PNG
//   - [web]: self-contained interactive HTML pages
//
// # Choosing an Encoding
//
// The raster painters are what the paginated exports and the HTTP chart
// endpoint serve; they honor supersampling for print fidelity. The network
// and HTML encodings are exploratory views over the same projection.
//
//	p, err := chart.New(matrix, scale.Default())
//	png, err := raster.Heatmap(p, raster.Options{Supersample: 2})
//	html, err := web.Render(p, chart.KindHeatmap)
//
// [chart.Projection]: github.com/clinigrid/clinigrid/pkg/chart
// [raster]: github.com/clinigrid/clinigrid/pkg/render/raster
// [scatter]: github.com/clinigrid/clinigrid/pkg/render/scatter
// [cooccur]: github.com/clinigrid/clinigrid/pkg/render/cooccur
// [web]: github.com/clinigrid/clinigrid/pkg/render/web
package render
