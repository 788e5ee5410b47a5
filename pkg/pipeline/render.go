package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/export"
	"github.com/clinigrid/clinigrid/pkg/render/cooccur"
	"github.com/clinigrid/clinigrid/pkg/render/web"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, p *chart.Projection, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, p, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates one output artifact for a projection.
//
// Format selects the encoder, the chart kind steers it where several views
// share a format: png renders the configured chart (heatmap, bubble,
// scatter, or the co-occurrence network), html embeds the interactive
// ECharts view, and json serializes the chart model. The svg and dot
// formats always encode the co-occurrence network, the only vector view.
func RenderFormat(ctx context.Context, p *chart.Projection, format string, opts Options) ([]byte, error) {
	exportOpts := opts.exportOptions()

	switch format {
	case FormatXLSX:
		return export.Spreadsheet(p, exportOpts)
	case FormatPDF:
		return export.Document(ctx, p, exportOpts)
	case FormatPNG:
		if opts.ChartKind() == chart.KindNetwork {
			return cooccur.RenderPNG(ctx, p)
		}
		return export.Image(p, exportOpts)
	case FormatHTML:
		return web.Render(p, opts.ChartKind())
	case FormatSVG:
		return cooccur.RenderSVG(ctx, p)
	case FormatDOT:
		return cooccur.DOT(p), nil
	case FormatJSON:
		return MarshalModel(p.Model(opts.ChartKind()))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// MarshalModel serializes a chart model for JSON artifacts and API
// responses. Output is indented; models are read by people at least as
// often as by programs.
func MarshalModel(m chart.Model) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart model")
	}
	return data, nil
}

// UnmarshalModel decodes a serialized chart model.
func UnmarshalModel(data []byte) (chart.Model, error) {
	var m chart.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return chart.Model{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse chart model")
	}
	return m, nil
}
