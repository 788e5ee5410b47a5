package export

import (
	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/render/raster"
	"github.com/clinigrid/clinigrid/pkg/render/scatter"
)

// =============================================================================
// Image Export - Single PNG
// =============================================================================

// Image renders a projection as one PNG of the chart kind selected in
// opts.Chart: heatmap, bubble, or ranked scatter. Network and table views
// have their own encoders and are rejected here with INVALID_CHART.
func Image(p *chart.Projection, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	switch opts.Chart {
	case chart.KindHeatmap:
		return raster.Heatmap(p, raster.Options{Supersample: opts.Supersample})
	case chart.KindBubble:
		return raster.Bubble(p, raster.Options{Supersample: opts.Supersample})
	case chart.KindScatter:
		return scatter.Render(p, scatter.Options{Supersample: opts.Supersample})
	default:
		return nil, errors.New(errors.ErrCodeInvalidChart,
			"no image encoding for %s charts", opts.Chart)
	}
}
