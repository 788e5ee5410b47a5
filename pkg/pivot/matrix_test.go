package pivot

import (
	"testing"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// testMatrix builds the two-row matrix used throughout the engine tests:
// A has 5 on day one and nothing on day two, B has 1 and 3.
func testMatrix() *Matrix {
	return &Matrix{
		Rows:    []string{"A", "B"},
		Columns: []string{"01/01/24", "01/02/24"},
		Cells: map[string]map[string]int{
			"A": {"01/01/24": 5, "01/02/24": 0},
			"B": {"01/01/24": 1, "01/02/24": 3},
		},
		MaxValue: 5,
	}
}

func TestValue(t *testing.T) {
	m := testMatrix()

	tests := []struct {
		row, col string
		want     int
	}{
		{"A", "01/01/24", 5},
		{"A", "01/02/24", 0},
		{"B", "01/02/24", 3},
		{"A", "01/09/24", 0}, // absent column
		{"Z", "01/01/24", 0}, // absent row
	}
	for _, tt := range tests {
		if got := m.Value(tt.row, tt.col); got != tt.want {
			t.Errorf("Value(%q, %q) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestRowTotal(t *testing.T) {
	m := testMatrix()

	if got := m.RowTotal("A"); got != 5 {
		t.Errorf("RowTotal(A) = %d, want 5", got)
	}
	if got := m.RowTotal("B"); got != 4 {
		t.Errorf("RowTotal(B) = %d, want 4", got)
	}
	if got := m.RowTotal("missing"); got != 0 {
		t.Errorf("RowTotal(missing) = %d, want 0", got)
	}
}

func TestTrueMax(t *testing.T) {
	m := testMatrix()
	if got := m.TrueMax(); got != 5 {
		t.Errorf("TrueMax() = %d, want 5", got)
	}

	empty := &Matrix{Rows: []string{"A"}, Columns: []string{"01/01/24"}}
	if got := empty.TrueMax(); got != 0 {
		t.Errorf("TrueMax() on empty matrix = %d, want 0", got)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		m    *Matrix
		want bool
	}{
		{"populated", testMatrix(), false},
		{"no rows", &Matrix{Columns: []string{"01/01/24"}}, true},
		{"no columns", &Matrix{Rows: []string{"A"}}, true},
		{
			"all zero cells",
			&Matrix{
				Rows:    []string{"A"},
				Columns: []string{"01/01/24"},
				Cells:   map[string]map[string]int{"A": {"01/01/24": 0}},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	t.Run("valid matrix", func(t *testing.T) {
		if err := testMatrix().Verify(); err != nil {
			t.Errorf("Verify() unexpected error: %v", err)
		}
	})

	t.Run("empty matrix is valid", func(t *testing.T) {
		m := &Matrix{}
		if err := m.Verify(); err != nil {
			t.Errorf("Verify() on empty matrix: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Matrix)
	}{
		{"duplicate row", func(m *Matrix) { m.Rows = append(m.Rows, "A") }},
		{"duplicate column", func(m *Matrix) { m.Columns = append(m.Columns, "01/01/24") }},
		{"undeclared row in cells", func(m *Matrix) { m.Cells["ghost"] = map[string]int{"01/01/24": 1} }},
		{"undeclared column in cells", func(m *Matrix) { m.Cells["A"]["01/09/24"] = 2 }},
		{"negative count", func(m *Matrix) { m.Cells["B"]["01/01/24"] = -1 }},
		{"maxValue too low", func(m *Matrix) { m.MaxValue = 3 }},
		{"maxValue too high", func(m *Matrix) { m.MaxValue = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMatrix()
			tt.mutate(m)
			err := m.Verify()
			if err == nil {
				t.Fatal("Verify() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeMatrixIntegrity) {
				t.Errorf("Verify() code = %v, want MATRIX_INTEGRITY", errors.GetCode(err))
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"symptom", CategorySymptom, false},
		{"Symptoms", CategorySymptom, false},
		{"diagnosis", CategoryDiagnosis, false},
		{"dx", CategoryDiagnosis, false},
		{"category", CategoryGroup, false},
		{"HRSN", CategoryHRSN, false},
		{" hrsn ", CategoryHRSN, false},
		{"", "", true},
		{"vitals", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryTitle(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategorySymptom, "Symptoms"},
		{CategoryDiagnosis, "Diagnoses"},
		{CategoryGroup, "Diagnostic Categories"},
		{CategoryHRSN, "HRSN Indicators"},
	}
	for _, tt := range tests {
		if got := tt.cat.Title(); got != tt.want {
			t.Errorf("Title(%v) = %q, want %q", tt.cat, got, tt.want)
		}
	}
}
