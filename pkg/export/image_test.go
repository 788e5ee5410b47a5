package export

import (
	"bytes"
	"testing"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestImageChartKinds(t *testing.T) {
	p := fidelityProjection(t)

	tests := []struct {
		name string
		kind chart.Kind
	}{
		{"heatmap", chart.KindHeatmap},
		{"bubble", chart.KindBubble},
		{"scatter", chart.KindScatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Image(p, Options{GeneratedAt: exportedAt, Chart: tt.kind})
			if err != nil {
				t.Fatalf("Image(%s) error: %v", tt.kind, err)
			}
			if !bytes.HasPrefix(data, pngMagic) {
				t.Errorf("Image(%s) did not produce a PNG", tt.kind)
			}
		})
	}
}

func TestImageRejectsNonImageKinds(t *testing.T) {
	p := fidelityProjection(t)

	for _, kind := range []chart.Kind{chart.KindTable, chart.KindNetwork} {
		_, err := Image(p, Options{GeneratedAt: exportedAt, Chart: kind})
		if err == nil {
			t.Fatalf("Image(%s) expected error", kind)
		}
		if !errors.Is(err, errors.ErrCodeInvalidChart) {
			t.Errorf("Image(%s) code = %v, want INVALID_CHART", kind, errors.GetCode(err))
		}
	}
}

func TestImageEmptyProjectionPlaceholder(t *testing.T) {
	p := emptyProjection(t)
	data, err := Image(p, Options{GeneratedAt: exportedAt, Chart: chart.KindHeatmap})
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("placeholder export is not a PNG")
	}
}
