package export

import (
	"fmt"
	"testing"
	"time"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// exportedAt pins timestamps so artifact bytes are reproducible across runs.
var exportedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fidelityProjection is the reference scenario used across the encoder
// tests: A totals 5 (rank 1), B totals 4 (rank 2), maxValue 5, two
// chronological dates.
func fidelityProjection(t *testing.T) *chart.Projection {
	t.Helper()
	m := &pivot.Matrix{
		Subject:  "patient-042",
		Category: pivot.CategorySymptom,
		Rows:     []string{"A", "B"},
		Columns:  []string{"01/01/24", "01/02/24"},
		Cells: map[string]map[string]int{
			"A": {"01/01/24": 5, "01/02/24": 0},
			"B": {"01/01/24": 1, "01/02/24": 3},
		},
		MaxValue: 5,
	}
	return mustProjection(t, m)
}

// emptyProjection has rows and columns but no nonzero counts.
func emptyProjection(t *testing.T) *chart.Projection {
	t.Helper()
	m := &pivot.Matrix{
		Subject:  "patient-042",
		Category: pivot.CategorySymptom,
		Rows:     []string{"A"},
		Columns:  []string{"01/01/24"},
		Cells:    map[string]map[string]int{"A": {"01/01/24": 0}},
		MaxValue: 0,
	}
	return mustProjection(t, m)
}

// wideProjection builds a rows x cols matrix large enough to force tiling.
func wideProjection(t *testing.T, rows, cols int) *chart.Projection {
	t.Helper()
	m := &pivot.Matrix{
		Subject:  "ward-b",
		Category: pivot.CategoryDiagnosis,
		Cells:    make(map[string]map[string]int, rows),
	}
	for c := 0; c < cols; c++ {
		m.Columns = append(m.Columns, fmt.Sprintf("2024-01-%02d", c+1))
	}
	for r := 0; r < rows; r++ {
		name := fmt.Sprintf("item-%03d", r)
		m.Rows = append(m.Rows, name)
		m.Cells[name] = map[string]int{m.Columns[r%cols]: r%7 + 1}
		if r%7+1 > m.MaxValue {
			m.MaxValue = r%7 + 1
		}
	}
	return mustProjection(t, m)
}

func mustProjection(t *testing.T, m *pivot.Matrix) *chart.Projection {
	t.Helper()
	p, err := chart.New(m, scale.Default())
	if err != nil {
		t.Fatalf("chart.New() unexpected error: %v", err)
	}
	return p
}
