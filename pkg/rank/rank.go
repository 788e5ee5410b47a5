// Package rank derives the single row ordering shared by every chart type
// and every export.
//
// Ranking is deliberately centralized: when each presentation sorts for
// itself, heatmap and bubble views drift apart on top-N ordering the first
// time one call site changes. Every consumer takes the output of this
// package as-is and never re-sorts.
package rank

import (
	"fmt"
	"sort"

	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// Row is one ranked item: name, total occurrences across all columns, and
// 1-based rank. Rank 0 marks an unranked all-zero row, which only appears
// in the all-rows mode.
type Row struct {
	Name  string `json:"name" bson:"name"`
	Total int    `json:"total" bson:"total"`
	Rank  int    `json:"rank" bson:"rank"`
}

// Label renders the row label used identically on screen, in spreadsheet
// row headers, and in document pages: "3. Cough (12)". Unranked rows
// render without the rank prefix.
func (r Row) Label() string {
	if r.Rank == 0 {
		return fmt.Sprintf("%s (%d)", r.Name, r.Total)
	}
	return fmt.Sprintf("%d. %s (%d)", r.Rank, r.Name, r.Total)
}

// Rows computes the ranked list for a matrix: total descending, ties
// broken by ascending name, rank 1..N. Rows whose total is zero are
// excluded; they remain valid matrix rows (they render as empty cells)
// but carry no rank.
//
// The result is deterministic: equal inputs produce identical output.
func Rows(m *pivot.Matrix) []Row {
	ranked := make([]Row, 0, len(m.Rows))
	for _, name := range m.Rows {
		if total := m.RowTotal(name); total > 0 {
			ranked = append(ranked, Row{Name: name, Total: total})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// AllRows returns the ranked rows followed by the all-zero rows in name
// order with rank 0. This is the all-rows export mode: a complete listing
// that still leads with the ranked ordering.
func AllRows(m *pivot.Matrix) []Row {
	out := Rows(m)

	var zeros []Row
	for _, name := range m.Rows {
		if m.RowTotal(name) == 0 {
			zeros = append(zeros, Row{Name: name})
		}
	}
	sort.Slice(zeros, func(i, j int) bool { return zeros[i].Name < zeros[j].Name })

	return append(out, zeros...)
}
