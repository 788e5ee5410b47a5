package rank

import (
	"reflect"
	"testing"

	"github.com/clinigrid/clinigrid/pkg/pivot"
)

func matrix(rows []string, cells map[string]map[string]int) *pivot.Matrix {
	m := &pivot.Matrix{
		Rows:    rows,
		Columns: []string{"01/01/24", "01/02/24"},
		Cells:   cells,
	}
	m.MaxValue = m.TrueMax()
	return m
}

func TestRows(t *testing.T) {
	m := matrix([]string{"A", "B"}, map[string]map[string]int{
		"A": {"01/01/24": 5, "01/02/24": 0},
		"B": {"01/01/24": 1, "01/02/24": 3},
	})

	got := Rows(m)
	want := []Row{
		{Name: "A", Total: 5, Rank: 1},
		{Name: "B", Total: 4, Rank: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %+v, want %+v", got, want)
	}
}

func TestRowsDeterminism(t *testing.T) {
	m := matrix([]string{"Fever", "Cough", "Fatigue", "Nausea"}, map[string]map[string]int{
		"Fever":   {"01/01/24": 2, "01/02/24": 2},
		"Cough":   {"01/01/24": 4},
		"Fatigue": {"01/02/24": 4},
		"Nausea":  {"01/01/24": 1},
	})

	first := Rows(m)
	second := Rows(m)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Rows() not deterministic: %+v vs %+v", first, second)
	}
}

func TestRowsTieBreak(t *testing.T) {
	// Cough, Fatigue, and Fever all total 4; alphabetical order decides.
	m := matrix([]string{"Fever", "Cough", "Fatigue"}, map[string]map[string]int{
		"Fever":   {"01/01/24": 4},
		"Cough":   {"01/02/24": 4},
		"Fatigue": {"01/01/24": 2, "01/02/24": 2},
	})

	got := Rows(m)
	wantOrder := []string{"Cough", "Fatigue", "Fever"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("rank %d = %q, want %q", i+1, got[i].Name, name)
		}
		if got[i].Rank != i+1 {
			t.Errorf("rank for %q = %d, want %d", name, got[i].Rank, i+1)
		}
	}
}

func TestRowsExcludesZeroTotals(t *testing.T) {
	m := matrix([]string{"A", "Silent", "B"}, map[string]map[string]int{
		"A":      {"01/01/24": 2},
		"Silent": {"01/01/24": 0},
		"B":      {"01/02/24": 1},
	})

	got := Rows(m)
	if len(got) != 2 {
		t.Fatalf("Rows() returned %d rows, want 2", len(got))
	}
	for _, r := range got {
		if r.Name == "Silent" {
			t.Error("zero-total row appeared in ranked list")
		}
	}
}

func TestAllRows(t *testing.T) {
	m := matrix([]string{"Zed", "A", "Mute", "B"}, map[string]map[string]int{
		"A": {"01/01/24": 3},
		"B": {"01/01/24": 5},
	})

	got := AllRows(m)
	want := []Row{
		{Name: "B", Total: 5, Rank: 1},
		{Name: "A", Total: 3, Rank: 2},
		{Name: "Mute", Total: 0, Rank: 0},
		{Name: "Zed", Total: 0, Rank: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllRows() = %+v, want %+v", got, want)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		row  Row
		want string
	}{
		{Row{Name: "Cough", Total: 12, Rank: 3}, "3. Cough (12)"},
		{Row{Name: "A", Total: 5, Rank: 1}, "1. A (5)"},
		{Row{Name: "Silent", Total: 0, Rank: 0}, "Silent (0)"},
	}
	for _, tt := range tests {
		if got := tt.row.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestRowsEmptyMatrix(t *testing.T) {
	m := matrix(nil, nil)
	if got := Rows(m); len(got) != 0 {
		t.Errorf("Rows() on empty matrix = %+v, want empty", got)
	}
}
