package chart

import (
	"testing"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// fidelityMatrix is the reference scenario used across the engine tests:
// A totals 5 (rank 1), B totals 4 (rank 2), maxValue 5.
func fidelityMatrix() *pivot.Matrix {
	return &pivot.Matrix{
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
}

func mustProjection(t *testing.T, m *pivot.Matrix, opts ...Option) *Projection {
	t.Helper()
	p, err := New(m, scale.Default(), opts...)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return p
}

func TestNewRejectsBrokenMatrix(t *testing.T) {
	m := fidelityMatrix()
	m.MaxValue = 3 // integrity violation

	_, err := New(m, scale.Default())
	if err == nil {
		t.Fatal("New() expected error for inconsistent maxValue")
	}
	if !errors.Is(err, errors.ErrCodeMatrixIntegrity) {
		t.Errorf("New() code = %v, want MATRIX_INTEGRITY", errors.GetCode(err))
	}
}

func TestColumnsChronological(t *testing.T) {
	m := &pivot.Matrix{
		Rows:    []string{"A"},
		Columns: []string{"02/01/24", "2024-01-15T00:00:00Z", "12/31/23"},
		Cells:   map[string]map[string]int{"A": {"02/01/24": 1}},
	}
	m.MaxValue = m.TrueMax()

	p := mustProjection(t, m)
	want := []string{"12/31/23", "2024-01-15T00:00:00Z", "02/01/24"}
	got := p.Columns()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	labels := p.Labels()
	wantLabels := []string{"12/31/23", "01/15/24", "02/01/24"}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, labels[i], wantLabels[i])
		}
	}

	if len(p.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none", p.Warnings())
	}
}

func TestColumnFallbackOnBadDate(t *testing.T) {
	m := &pivot.Matrix{
		Rows:    []string{"A"},
		Columns: []string{"02/01/24", "Visit Three", "01/01/24"},
		Cells:   map[string]map[string]int{"A": {"02/01/24": 1}},
	}
	m.MaxValue = m.TrueMax()

	p := mustProjection(t, m)

	// Original order preserved for the whole set, not just the bad label.
	got := p.Columns()
	want := []string{"02/01/24", "Visit Three", "01/01/24"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want original %q", i, got[i], want[i])
		}
	}

	// And the fallback is visible, not silent.
	if len(p.Warnings()) != 1 {
		t.Fatalf("Warnings() = %v, want exactly one", p.Warnings())
	}

	// Unparseable labels pass through to display unchanged.
	if p.Labels()[1] != "Visit Three" {
		t.Errorf("Labels()[1] = %q, want passthrough", p.Labels()[1])
	}
}

func TestFidelityScenario(t *testing.T) {
	p := mustProjection(t, fidelityMatrix())

	ranked := p.Ranked()
	if len(ranked) != 2 {
		t.Fatalf("Ranked() = %+v, want 2 rows", ranked)
	}
	if ranked[0].Name != "A" || ranked[0].Total != 5 || ranked[0].Rank != 1 {
		t.Errorf("rank 1 = %+v, want {A 5 1}", ranked[0])
	}
	if ranked[1].Name != "B" || ranked[1].Total != 4 || ranked[1].Rank != 2 {
		t.Errorf("rank 2 = %+v, want {B 4 2}", ranked[1])
	}

	buckets := map[[2]string]scale.Bucket{}
	for _, c := range p.HeatmapCells() {
		buckets[[2]string{c.Row, c.Column}] = c.Bucket
	}

	expect := map[[2]string]scale.Bucket{
		{"A", "01/01/24"}: scale.BucketHighest,
		{"B", "01/02/24"}: scale.BucketHigh,
		{"B", "01/01/24"}: scale.BucketLow,
		{"A", "01/02/24"}: scale.BucketEmpty,
	}
	for cell, want := range expect {
		if got := buckets[cell]; got != want {
			t.Errorf("bucket for %v = %v, want %v", cell, got, want)
		}
	}
}

func TestBubblePointsOmitZeros(t *testing.T) {
	p := mustProjection(t, fidelityMatrix())

	points := p.BubblePoints()
	if len(points) != 3 {
		t.Fatalf("BubblePoints() returned %d points, want 3", len(points))
	}
	for _, pt := range points {
		if pt.Value == 0 {
			t.Errorf("zero-value point leaked into bubbles: %+v", pt)
		}
		if pt.Row == "A" && pt.Column == "01/02/24" {
			t.Errorf("A/01/02/24 has value 0 and must not produce a bubble")
		}
		if pt.Size <= 0 {
			t.Errorf("point %+v has non-positive size", pt)
		}
	}
}

// The three encodings must agree on ordering because they share one
// ranking; none of them is allowed to sort for itself.
func TestEncodingsShareOrdering(t *testing.T) {
	m := &pivot.Matrix{
		Rows:    []string{"Fever", "Cough", "Nausea", "Fatigue"},
		Columns: []string{"01/01/24", "01/02/24"},
		Cells: map[string]map[string]int{
			"Fever":   {"01/01/24": 2, "01/02/24": 2},
			"Cough":   {"01/01/24": 4},
			"Nausea":  {"01/02/24": 1},
			"Fatigue": {"01/01/24": 2, "01/02/24": 2},
		},
	}
	m.MaxValue = m.TrueMax()

	p := mustProjection(t, m)
	ranked := p.Ranked()

	// Heatmap row indices follow the ranking.
	for _, c := range p.HeatmapCells() {
		if ranked[c.RowIndex].Name != c.Row {
			t.Errorf("heatmap cell %+v disagrees with ranking at index %d", c, c.RowIndex)
		}
	}

	// Bubble labels carry the exact ranked labels.
	for _, pt := range p.BubblePoints() {
		if want := ranked[pt.RowIndex].Label(); pt.Label != want {
			t.Errorf("bubble label %q, want %q", pt.Label, want)
		}
	}

	// Table rows appear in ranking order.
	table := p.RankedTable()
	for i, tr := range table {
		if tr.Name != ranked[i].Name || tr.Rank != ranked[i].Rank {
			t.Errorf("table row %d = %+v, want %+v", i, tr.Row, ranked[i])
		}
	}
}

func TestRankedTableValues(t *testing.T) {
	p := mustProjection(t, fidelityMatrix())

	table := p.RankedTable()
	if len(table) != 2 {
		t.Fatalf("RankedTable() returned %d rows, want 2", len(table))
	}

	// Columns are chronological: 01/01/24 then 01/02/24.
	wantA := []int{5, 0}
	wantB := []int{1, 3}
	for j, v := range wantA {
		if table[0].Values[j] != v {
			t.Errorf("A values[%d] = %d, want %d", j, table[0].Values[j], v)
		}
	}
	for j, v := range wantB {
		if table[1].Values[j] != v {
			t.Errorf("B values[%d] = %d, want %d", j, table[1].Values[j], v)
		}
	}
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name string
		m    *pivot.Matrix
		want bool
	}{
		{"populated", fidelityMatrix(), false},
		{
			"all zero",
			&pivot.Matrix{
				Rows:    []string{"A"},
				Columns: []string{"01/01/24"},
				Cells:   map[string]map[string]int{"A": {"01/01/24": 0}},
			},
			true,
		},
		{"no columns", &pivot.Matrix{Rows: []string{"A"}}, true},
		{"nothing at all", &pivot.Matrix{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProjection(t, tt.m)
			if got := p.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithAllRows(t *testing.T) {
	m := fidelityMatrix()
	m.Rows = append(m.Rows, "Silent")

	p := mustProjection(t, m, WithAllRows())
	ranked := p.Ranked()
	if len(ranked) != 3 {
		t.Fatalf("Ranked() with all rows = %d entries, want 3", len(ranked))
	}
	last := ranked[2]
	if last.Name != "Silent" || last.Rank != 0 || last.Total != 0 {
		t.Errorf("trailing row = %+v, want unranked Silent", last)
	}
	if !p.AllRows() {
		t.Error("AllRows() = false, want true")
	}
}

func TestTitle(t *testing.T) {
	p := mustProjection(t, fidelityMatrix())
	if got := p.Title(); got != "Symptoms for patient-042" {
		t.Errorf("Title() = %q, want %q", got, "Symptoms for patient-042")
	}

	p = mustProjection(t, fidelityMatrix(), WithTitle("Custom Heading"))
	if got := p.Title(); got != "Custom Heading" {
		t.Errorf("Title() = %q, want override", got)
	}

	bare := &pivot.Matrix{}
	p = mustProjection(t, bare)
	if got := p.Title(); got != "Occurrence Matrix" {
		t.Errorf("Title() = %q, want default", got)
	}
}

func TestModelShapes(t *testing.T) {
	p := mustProjection(t, fidelityMatrix())

	heat := p.Model(KindHeatmap)
	if len(heat.Cells) != 4 || heat.Points != nil || heat.Table != nil {
		t.Errorf("heatmap model carries wrong shapes: %d cells, %d points, %d table rows",
			len(heat.Cells), len(heat.Points), len(heat.Table))
	}
	if heat.Chart != KindHeatmap || heat.MaxValue != 5 {
		t.Errorf("heatmap model metadata = %+v", heat)
	}

	bubble := p.Model(KindBubble)
	if len(bubble.Points) != 3 || bubble.Cells != nil {
		t.Errorf("bubble model carries wrong shapes")
	}

	table := p.Model(KindTable)
	if len(table.Table) != 2 {
		t.Errorf("table model carries wrong shapes")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"heatmap", KindHeatmap, false},
		{"BUBBLE", KindBubble, false},
		{" scatter ", KindScatter, false},
		{"table", KindTable, false},
		{"network", KindNetwork, false},
		{"pie", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
