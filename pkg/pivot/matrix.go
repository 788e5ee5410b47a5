package pivot

import (
	"strings"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Category identifies which kind of clinical item a matrix counts.
type Category string

// Supported item categories.
const (
	CategorySymptom   Category = "symptom"
	CategoryDiagnosis Category = "diagnosis"
	CategoryGroup     Category = "category" // diagnostic category rollups
	CategoryHRSN      Category = "hrsn"     // health-related social needs
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{CategorySymptom, CategoryDiagnosis, CategoryGroup, CategoryHRSN}
}

// ParseCategory normalizes a category string. It accepts any case and a
// few common aliases seen in upstream payloads.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symptom", "symptoms":
		return CategorySymptom, nil
	case "diagnosis", "diagnoses", "dx":
		return CategoryDiagnosis, nil
	case "category", "categories", "dxgroup":
		return CategoryGroup, nil
	case "hrsn":
		return CategoryHRSN, nil
	}
	return "", errors.New(errors.ErrCodeInvalidCategory, "unknown category %q (valid: symptom, diagnosis, category, hrsn)", s)
}

// Title returns the heading form of the category used in chart titles and
// sheet names.
func (c Category) Title() string {
	switch c {
	case CategorySymptom:
		return "Symptoms"
	case CategoryDiagnosis:
		return "Diagnoses"
	case CategoryGroup:
		return "Diagnostic Categories"
	case CategoryHRSN:
		return "HRSN Indicators"
	}
	return string(c)
}

// =============================================================================
// Matrix - Normalized Pivot Data
// =============================================================================

// Matrix is the normalized pivot structure: rows × date columns with sparse
// occurrence counts. It is the canonical serialization format for API
// responses, files, caching, and document storage.
//
// Rows and Columns are ordered sets: order is whatever the producer sent
// (chronological sorting happens downstream), labels must be unique.
// Cells is sparse; a missing entry means a count of zero. MaxValue must
// equal the true maximum over all cells, which Verify enforces.
type Matrix struct {
	Subject  string                    `json:"subject,omitempty" bson:"subject,omitempty"`
	Category Category                  `json:"category,omitempty" bson:"category,omitempty"`
	Rows     []string                  `json:"rows" bson:"rows"`
	Columns  []string                  `json:"columns" bson:"columns"`
	Cells    map[string]map[string]int `json:"data" bson:"data"`
	MaxValue int                       `json:"maxValue" bson:"maxValue"`
}

// Value returns the count for (row, column); absent cells are zero.
func (m *Matrix) Value(row, column string) int {
	return m.Cells[row][column]
}

// RowTotal sums every cell in the given row.
func (m *Matrix) RowTotal(row string) int {
	total := 0
	for _, v := range m.Cells[row] {
		total += v
	}
	return total
}

// TrueMax recomputes the maximum cell value from the sparse cells,
// independent of the declared MaxValue.
func (m *Matrix) TrueMax() int {
	max := 0
	for _, cols := range m.Cells {
		for _, v := range cols {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// HasData reports whether any cell is non-zero.
func (m *Matrix) HasData() bool {
	for _, cols := range m.Cells {
		for _, v := range cols {
			if v > 0 {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports the no-data state: no rows, no columns, or all-zero
// cells. This is a defined rendering state ("No data available"), not an
// error; an empty matrix still passes Verify.
func (m *Matrix) IsEmpty() bool {
	return len(m.Rows) == 0 || len(m.Columns) == 0 || !m.HasData()
}

// =============================================================================
// Integrity
// =============================================================================

// Verify checks the matrix invariants and fails fast on the first
// violation with a MATRIX_INTEGRITY coded error:
//
//   - row and column labels are unique
//   - every cell key references a declared row and column
//   - counts are non-negative
//   - MaxValue equals the recomputed true maximum
//
// Rendering must not proceed on a matrix that fails Verify; a structurally
// invalid matrix would produce misleading output rather than an obviously
// broken one.
func (m *Matrix) Verify() error {
	rowSet := make(map[string]struct{}, len(m.Rows))
	for _, r := range m.Rows {
		if _, dup := rowSet[r]; dup {
			return errors.New(errors.ErrCodeMatrixIntegrity, "duplicate row label %q", r)
		}
		rowSet[r] = struct{}{}
	}

	colSet := make(map[string]struct{}, len(m.Columns))
	for _, c := range m.Columns {
		if _, dup := colSet[c]; dup {
			return errors.New(errors.ErrCodeMatrixIntegrity, "duplicate column label %q", c)
		}
		colSet[c] = struct{}{}
	}

	for row, cols := range m.Cells {
		if _, ok := rowSet[row]; !ok {
			return errors.New(errors.ErrCodeMatrixIntegrity, "cells reference undeclared row %q", row)
		}
		for col, v := range cols {
			if _, ok := colSet[col]; !ok {
				return errors.New(errors.ErrCodeMatrixIntegrity, "cells reference undeclared column %q under row %q", col, row)
			}
			if v < 0 {
				return errors.New(errors.ErrCodeMatrixIntegrity, "negative count %d at (%q, %q)", v, row, col)
			}
		}
	}

	if actual := m.TrueMax(); m.MaxValue != actual {
		return errors.New(errors.ErrCodeMatrixIntegrity, "declared maxValue %d does not match actual maximum %d", m.MaxValue, actual)
	}

	return nil
}
