package pipeline

import (
	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// =============================================================================
// Projection
// =============================================================================

// Project builds the chart projection for a verified matrix: chronological
// column ordering, ranked rows, and the scaling engine assembled from the
// configured theme and curve.
//
// Projections are cheap to compute, so unlike artifacts they are never
// cached; the pipeline recomputes them from the (cached) matrix on every
// run. Column sort warnings are carried on the projection for the caller
// to surface.
func Project(m *pivot.Matrix, opts Options) (*chart.Projection, error) {
	if err := opts.ValidateForModel(); err != nil {
		return nil, err
	}

	var copts []chart.Option
	if opts.AllRows {
		copts = append(copts, chart.WithAllRows())
	}
	return chart.New(m, opts.Engine(), copts...)
}
